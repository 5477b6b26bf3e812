package mesh_test

import (
	"reflect"
	"testing"

	"github.com/chazu/treen/pkg/mesh"
)

func TestApplyUniformColor(t *testing.T) {
	m := makeTriangle("tri")
	c := mesh.RGBA{R: 0.5, G: 0.25, B: 1, A: 1}

	if _, err := mesh.ApplyUniformColor(m, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := len(m.Colors), m.VertexCount()*4; got != want {
		t.Fatalf("colors length: got %d, want %d", got, want)
	}
	for i := 0; i < m.VertexCount(); i++ {
		if m.Colors[4*i] != 0.5 || m.Colors[4*i+3] != 1 {
			t.Errorf("vertex %d has wrong color", i)
		}
	}
}

func TestApplyUniformColorIdempotent(t *testing.T) {
	m := makeTriangle("tri")
	c := mesh.RGBA{R: 1, G: 0.5, B: 0, A: 1}

	if _, err := mesh.ApplyUniformColor(m, c); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	first := append([]float32(nil), m.Colors...)

	if _, err := mesh.ApplyUniformColor(m, c); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if !reflect.DeepEqual(first, m.Colors) {
		t.Error("applying the same color twice changed the buffer")
	}
}

func TestApplyUniformColorPreservesTopology(t *testing.T) {
	m := makeTriangle("tri")
	verts := append([]float32(nil), m.Vertices...)
	idx := append([]uint32(nil), m.Indices...)
	bounds := m.Bounds

	if _, err := mesh.ApplyUniformColor(m, mesh.White); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(verts, m.Vertices) || !reflect.DeepEqual(idx, m.Indices) {
		t.Error("color application altered geometry")
	}
	if bounds != m.Bounds {
		t.Error("color application altered bounds")
	}
}

func TestApplyUniformColorRejectsCorruptBuffer(t *testing.T) {
	m := makeTriangle("tri")
	m.Colors = []float32{1, 2} // wrong length for 3 vertices

	_, err := mesh.ApplyUniformColor(m, mesh.White)
	if err == nil {
		t.Fatal("expected error for mismatched colors buffer")
	}
	if _, ok := err.(*mesh.ShapeMismatchError); !ok {
		t.Errorf("expected *ShapeMismatchError, got %T: %v", err, err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    mesh.RGBA
		wantErr bool
	}{
		{in: "#ff0000", want: mesh.RGBA{R: 1, A: 1}},
		{in: "#00ff00", want: mesh.RGBA{G: 1, A: 1}},
		{in: "#00000080", want: mesh.RGBA{A: float32(0x80) / 255}},
		{in: "ff0000", wantErr: true},
		{in: "#ff00", wantErr: true},
		{in: "#zz0000", wantErr: true},
	}
	for _, tt := range tests {
		got, err := mesh.ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
