package figure_test

import (
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/figure"
	"github.com/chazu/treen/pkg/mesh"
)

func approx(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("%s: got %g, want %g", what, got, want)
	}
}

func TestCharacterSpecsTable(t *testing.T) {
	specs := figure.CharacterSpecs(figure.DefaultConfig())

	// 4 axial parts plus 9 mirrored parts per side.
	if len(specs) != 22 {
		t.Errorf("part count: got %d, want 22", len(specs))
	}

	seen := map[string]bool{}
	for _, s := range specs {
		if s.Name == "" {
			t.Error("part with empty name")
		}
		if seen[s.Name] {
			t.Errorf("duplicate part name %q", s.Name)
		}
		seen[s.Name] = true
	}
	for _, name := range []string{"head", "torso", "left-hand", "right-foot"} {
		if !seen[name] {
			t.Errorf("missing part %q", name)
		}
	}
}

func TestCharacterSpecsOffsetsIndependentOfHeight(t *testing.T) {
	// Height is the overall scale applied by Build, not baked into the
	// spec table: the base offsets are identical for any height.
	a := figure.CharacterSpecs(figure.DefaultConfig())

	cfg := figure.DefaultConfig()
	cfg.Height = 2.0
	b := figure.CharacterSpecs(cfg)

	for i := range a {
		if a[i].Offset != b[i].Offset {
			t.Errorf("part %q: base offset changed with height", a[i].Name)
		}
	}
}

func TestBuildCharacterDefault(t *testing.T) {
	m, err := figure.BuildCharacter(figure.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("empty character mesh")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("invalid mesh: %v", err)
	}
	if m.Name != "character" {
		t.Errorf("name: got %q, want character", m.Name)
	}
	// Every part is colored, so the combined stream is full length.
	if got, want := len(m.Colors), m.VertexCount()*4; got != want {
		t.Errorf("colors length: got %d, want %d", got, want)
	}
	// Head sphere tops out around 1.8 at scale 1.
	approx(t, m.Bounds.Max.Y, 1.8, "bounds max y")
}

func TestHeightScalesWholeAssembly(t *testing.T) {
	base, err := figure.BuildCharacter(figure.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := figure.DefaultConfig()
	cfg.Height = 2.0
	tall, err := figure.BuildCharacter(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if base.VertexCount() != tall.VertexCount() {
		t.Errorf("scaling changed topology: %d vs %d vertices", base.VertexCount(), tall.VertexCount())
	}
	// Every offset and dimension doubles relative to the origin.
	approx(t, tall.Bounds.Max.Y, 2*base.Bounds.Max.Y, "bounds max y")
	approx(t, tall.Bounds.Min.X, 2*base.Bounds.Min.X, "bounds min x")
	approx(t, tall.Bounds.Max.Z, 2*base.Bounds.Max.Z, "bounds max z")
}

func TestBuildScalesOffsets(t *testing.T) {
	specs := []figure.PartSpec{{
		Name: "orb", Kind: figure.KindSphere,
		Radius: 0.5, Segments: 6,
		Offset: v3.Vec{Y: 1},
		Color:  mesh.White,
	}}

	m, err := figure.Build(specs, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Radius 0.5 and offset y=1 both double.
	approx(t, m.Bounds.Min.Y, 1, "bounds min y")
	approx(t, m.Bounds.Max.Y, 3, "bounds max y")
}

func TestShoulderWidthMultiplier(t *testing.T) {
	base, err := figure.BuildCharacter(figure.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := figure.DefaultConfig()
	cfg.ShoulderWidth = 1.5
	wide, err := figure.BuildCharacter(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wide.Bounds.Max.X <= base.Bounds.Max.X {
		t.Errorf("wider shoulders did not widen the figure: %g <= %g",
			wide.Bounds.Max.X, base.Bounds.Max.X)
	}
}

func TestBuildAbortsOnBadPart(t *testing.T) {
	specs := []figure.PartSpec{
		{Name: "good", Kind: figure.KindSphere, Radius: 1, Segments: 8},
		{Name: "bad-limb", Kind: figure.KindCylinder, Radius: 0, Height: 1, Segments: 8},
	}

	_, err := figure.Build(specs, 1)
	if err == nil {
		t.Fatal("expected build to abort")
	}
	if !strings.Contains(err.Error(), "bad-limb") {
		t.Errorf("error does not name the failing part: %v", err)
	}
}

func TestBuildRejectsBadScale(t *testing.T) {
	if _, err := figure.Build(nil, 0); err == nil {
		t.Error("expected error for zero scale")
	}
	if _, err := figure.Build(nil, -1); err == nil {
		t.Error("expected error for negative scale")
	}
}

func TestBuildSword(t *testing.T) {
	m, err := figure.BuildSword(figure.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("invalid mesh: %v", err)
	}
	if m.Name != "sword" {
		t.Errorf("name: got %q, want sword", m.Name)
	}
	// Blade points up: the prop is much taller than it is wide.
	height := m.Bounds.Max.Y - m.Bounds.Min.Y
	width := m.Bounds.Max.X - m.Bounds.Min.X
	if height <= width {
		t.Errorf("sword proportions look wrong: height %g, width %g", height, width)
	}
}
