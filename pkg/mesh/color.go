package mesh

import "fmt"

// RGBA is a per-vertex color with components in [0, 1].
type RGBA struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// White is the default color used when a combined part carries no colors
// of its own but another part does.
var White = RGBA{R: 1, G: 1, B: 1, A: 1}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" hex string into an RGBA.
func ParseColor(s string) (RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return RGBA{}, fmt.Errorf("color %q: expected leading '#'", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return RGBA{}, fmt.Errorf("color %q: expected 6 or 8 hex digits", s)
	}
	var b [4]uint8
	b[3] = 0xff
	for i := 0; i < len(hex)/2; i++ {
		hi, ok1 := hexDigit(hex[2*i])
		lo, ok2 := hexDigit(hex[2*i+1])
		if !ok1 || !ok2 {
			return RGBA{}, fmt.Errorf("color %q: invalid hex digit", s)
		}
		b[i] = hi<<4 | lo
	}
	return RGBA{
		R: float32(b[0]) / 255,
		G: float32(b[1]) / 255,
		B: float32(b[2]) / 255,
		A: float32(b[3]) / 255,
	}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ShapeMismatchError reports a colors buffer whose length disagrees with
// the vertex buffer. It guards against stamping colors onto a mesh that is
// already corrupt.
type ShapeMismatchError struct {
	Name     string // mesh name, may be empty
	Colors   int    // color values present (floats)
	Vertices int    // vertices present
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("mesh %q: colors buffer has %d values for %d vertices, want %d",
		e.Name, e.Colors, e.Vertices, e.Vertices*4)
}

// ApplyUniformColor stamps a single color onto every vertex of m. The mesh
// is mutated in place and returned. Topology, normals, uvs and bounds are
// untouched, and the operation is idempotent.
//
// A mesh whose colors buffer is non-empty but not 4 floats per vertex is
// rejected with a *ShapeMismatchError.
func ApplyUniformColor(m *Mesh, c RGBA) (*Mesh, error) {
	n := m.VertexCount()
	if len(m.Colors) != 0 && len(m.Colors) != n*4 {
		return nil, &ShapeMismatchError{Name: m.Name, Colors: len(m.Colors), Vertices: n}
	}
	if m.Colors == nil || cap(m.Colors) < n*4 {
		m.Colors = make([]float32, 0, n*4)
	} else {
		m.Colors = m.Colors[:0]
	}
	for i := 0; i < n; i++ {
		m.Colors = append(m.Colors, c.R, c.G, c.B, c.A)
	}
	return m, nil
}
