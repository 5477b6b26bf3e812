package mesh

import "fmt"

// Validate checks the structural invariants of the mesh representation:
// the index buffer is a whole number of triangles, every index names an
// existing vertex, and each optional attribute stream is either empty or
// exactly as long as the vertex buffer requires.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("vertex buffer has %d values, not a multiple of 3", len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index buffer has %d values, not a multiple of 3", len(m.Indices))
	}
	n := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at position %d out of range (have %d vertices)", idx, i, n)
		}
	}
	if len(m.Normals) != 0 && len(m.Normals) != n*3 {
		return fmt.Errorf("normals buffer has %d values for %d vertices, want 0 or %d", len(m.Normals), n, n*3)
	}
	if len(m.UVs) != 0 && len(m.UVs) != n*2 {
		return fmt.Errorf("uvs buffer has %d values for %d vertices, want 0 or %d", len(m.UVs), n, n*2)
	}
	if len(m.Colors) != 0 && len(m.Colors) != n*4 {
		return fmt.Errorf("colors buffer has %d values for %d vertices, want 0 or %d", len(m.Colors), n, n*4)
	}
	return nil
}
