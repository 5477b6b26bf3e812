// Package mesh defines the triangle mesh data model shared by the
// primitive generators, the OBJ-style loader, and the part combiner.
// All attribute arrays are flat: vertices and normals carry 3 floats per
// vertex, uvs carry 2, colors carry 4 (RGBA), and indices carry 3 uint32s
// per counter-clockwise triangle.
package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a triangle mesh suitable for rendering.
// Normals, UVs and Colors are optional: either empty, or exactly as long
// as the vertex buffer requires. An empty normals buffer means "recompute
// from topology"; an empty colors buffer means "use the material default".
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	UVs      []float32 `json:"uvs"`      // [u0,v0, ...]
	Colors   []float32 `json:"colors"`   // [r0,g0,b0,a0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // identifying label, not load-bearing
	Bounds   sdf.Box3  `json:"bounds"`   // derived from Vertices, see RecomputeBounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) v3.Vec {
	return v3.Vec{
		X: float64(m.Vertices[3*i]),
		Y: float64(m.Vertices[3*i+1]),
		Z: float64(m.Vertices[3*i+2]),
	}
}

// Normal returns the normal of vertex i. The normals buffer must be populated.
func (m *Mesh) Normal(i int) v3.Vec {
	return v3.Vec{
		X: float64(m.Normals[3*i]),
		Y: float64(m.Normals[3*i+1]),
		Z: float64(m.Normals[3*i+2]),
	}
}

// RecomputeBounds rebuilds the axis-aligned bounding box from the vertex
// buffer. Bounds are never authoritative on their own; call this after any
// structural edit. An empty mesh gets a zero box.
func (m *Mesh) RecomputeBounds() {
	if m.IsEmpty() {
		m.Bounds = sdf.Box3{}
		return
	}
	min := m.Vertex(0)
	max := min
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		min = min.Min(v)
		max = max.Max(v)
	}
	m.Bounds = sdf.Box3{Min: min, Max: max}
}

// appendVertex appends a position to the vertex buffer.
func (m *Mesh) appendVertex(v v3.Vec) {
	m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
}

// appendNormal appends a normal to the normals buffer.
func (m *Mesh) appendNormal(n v3.Vec) {
	m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
}
