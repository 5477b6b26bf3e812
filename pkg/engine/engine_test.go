package engine

import (
	"math"
	"strings"
	"testing"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if asm == nil {
		t.Fatal("expected non-nil assembly")
	}
	if asm.PartCount() != 0 {
		t.Errorf("expected empty assembly, got %d parts", asm.PartCount())
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if asm.PartCount() != 0 {
		t.Errorf("expected empty assembly, got %d parts", asm.PartCount())
	}
}

func TestEvaluateSphere(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate(`(sphere :radius 0.5 :segments 6 :at (vec3 0 1 0) :name "orb")`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if asm.PartCount() != 1 {
		t.Fatalf("expected 1 part, got %d", asm.PartCount())
	}

	part := asm.Parts[0]
	if part.Mesh.Name != "orb" {
		t.Errorf("part name: got %q, want orb", part.Mesh.Name)
	}
	if part.Transform.Translation.Y != 1 {
		t.Errorf("translation y: got %g, want 1", part.Transform.Translation.Y)
	}

	combined, err := asm.Combine()
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	// Sphere of radius 0.5 lifted to y=1 tops out at 1.5.
	if math.Abs(combined.Bounds.Max.Y-1.5) > 1e-5 {
		t.Errorf("bounds max y: got %g, want 1.5", combined.Bounds.Max.Y)
	}
}

func TestEvaluateMultiplePartsInOrder(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate(`
; a tiny two-part scene
(box :half (vec3 1 0.1 1) :name "base")
(cylinder :radius 0.2 :height 1 :segments 6 :at (vec3 0 0.6 0) :name "post")
`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if asm.PartCount() != 2 {
		t.Fatalf("expected 2 parts, got %d", asm.PartCount())
	}
	if asm.Parts[0].Mesh.Name != "base" || asm.Parts[1].Mesh.Name != "post" {
		t.Errorf("parts out of order: %q, %q", asm.Parts[0].Mesh.Name, asm.Parts[1].Mesh.Name)
	}
}

func TestEvaluateColoredPart(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate(`(box :half (vec3 1 1 1) :color "#ff0000")`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}

	m := asm.Parts[0].Mesh
	if got, want := len(m.Colors), m.VertexCount()*4; got != want {
		t.Fatalf("colors length: got %d, want %d", got, want)
	}
	if m.Colors[0] != 1 || m.Colors[1] != 0 {
		t.Errorf("expected red vertex color, got (%g,%g)", m.Colors[0], m.Colors[1])
	}
}

func TestEvaluateFigure(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate(`(figure :height 1.0 :segments 6)`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if asm.PartCount() != 1 {
		t.Fatalf("expected 1 part, got %d", asm.PartCount())
	}
	if asm.Parts[0].Mesh.Name != "character" {
		t.Errorf("part name: got %q", asm.Parts[0].Mesh.Name)
	}
	if asm.Parts[0].Mesh.VertexCount() < 100 {
		t.Error("character mesh suspiciously small")
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate("(sphere :radius")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if asm != nil {
		t.Error("expected nil assembly on parse failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
}

func TestEvaluateBadShapeParameter(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate("(sphere :radius -1)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if asm != nil {
		t.Error("expected nil assembly when a shape fails")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	found := false
	for _, e := range evalErrs {
		if strings.Contains(e.Message, "radius") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors do not mention the bad parameter: %v", evalErrs)
	}
}

func TestEvaluateUnknownFunction(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, _ := eng.Evaluate("(doodad 1 2 3)")
	if asm != nil && asm.PartCount() != 0 {
		t.Error("unknown function produced parts")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unknown function")
	}
}
