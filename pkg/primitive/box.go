package primitive

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/mesh"
)

// boxFace describes one face of the box: its outward normal and the two
// in-plane axes used for vertex layout and the planar unwrap.
type boxFace struct {
	normal v3.Vec
	uAxis  v3.Vec
	vAxis  v3.Vec
}

// Faces are ordered +X, -X, +Y, -Y, +Z, -Z. The u/v axes are chosen so
// that (uAxis x vAxis) points along the normal, giving CCW winding seen
// from outside.
var boxFaces = [6]boxFace{
	{v3.Vec{X: 1}, v3.Vec{Z: -1}, v3.Vec{Y: 1}},
	{v3.Vec{X: -1}, v3.Vec{Z: 1}, v3.Vec{Y: 1}},
	{v3.Vec{Y: 1}, v3.Vec{X: 1}, v3.Vec{Z: -1}},
	{v3.Vec{Y: -1}, v3.Vec{X: 1}, v3.Vec{Z: 1}},
	{v3.Vec{Z: 1}, v3.Vec{X: 1}, v3.Vec{Y: 1}},
	{v3.Vec{Z: -1}, v3.Vec{X: -1}, v3.Vec{Y: 1}},
}

// Box generates an axis-aligned box with the given half extents around
// center. Each face carries its own four vertices so face normals stay
// sharp: 24 vertices, 12 triangles.
func Box(half v3.Vec, center v3.Vec) (*mesh.Mesh, error) {
	for _, p := range []struct {
		name  string
		value float64
	}{{"half extent X", half.X}, {"half extent Y", half.Y}, {"half extent Z", half.Z}} {
		if p.value <= 0 {
			return nil, &ShapeParameterError{Shape: "box", Param: p.name, Value: p.value}
		}
	}

	m := &mesh.Mesh{
		Name:     "box",
		Vertices: make([]float32, 0, 24*3),
		Normals:  make([]float32, 0, 24*3),
		UVs:      make([]float32, 0, 24*2),
		Indices:  make([]uint32, 0, 36),
	}

	for _, f := range boxFaces {
		// Extent of the face along its normal and in-plane axes.
		fc := mulComponents(f.normal, half)
		du := mulComponents(f.uAxis, half)
		dv := mulComponents(f.vAxis, half)

		base := uint32(len(m.Vertices) / 3)
		// Corners in (u,v) order: (-,-), (+,-), (+,+), (-,+).
		corners := [4]v3.Vec{
			fc.Sub(du).Sub(dv),
			fc.Add(du).Sub(dv),
			fc.Add(du).Add(dv),
			fc.Sub(du).Add(dv),
		}
		uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

		for i, c := range corners {
			p := center.Add(c)
			m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
			m.Normals = append(m.Normals, float32(f.normal.X), float32(f.normal.Y), float32(f.normal.Z))
			m.UVs = append(m.UVs, uvs[i][0], uvs[i][1])
		}

		m.Indices = append(m.Indices, base, base+1, base+2)
		m.Indices = append(m.Indices, base, base+2, base+3)
	}

	m.RecomputeBounds()
	return m, nil
}

// mulComponents multiplies two vectors component-wise.
func mulComponents(a, b v3.Vec) v3.Vec {
	return v3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}
