package primitive

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/mesh"
)

// Cylinder generates a capped cylinder along the Y axis, centered on
// center, with the given radius and height. segments is the radial
// resolution. The side wall uses a cylindrical unwrap, the caps a planar
// one. Vertex count grows linearly with segments.
func Cylinder(radius, height float64, segments int, center v3.Vec) (*mesh.Mesh, error) {
	if radius <= 0 {
		return nil, &ShapeParameterError{Shape: "cylinder", Param: "radius", Value: radius}
	}
	if height <= 0 {
		return nil, &ShapeParameterError{Shape: "cylinder", Param: "height", Value: height}
	}
	if segments < 3 {
		return nil, &ShapeParameterError{Shape: "cylinder", Param: "segments", Value: float64(segments)}
	}

	// Side wall: (segments+1) columns x 2 rows. Caps: center + (segments+1)
	// rim vertices each. Rim vertices are duplicated between wall and caps
	// so their normals stay independent.
	nVerts := (segments+1)*2 + 2*(segments+2)
	nIdx := segments*6 + segments*6

	m := &mesh.Mesh{
		Name:     "cylinder",
		Vertices: make([]float32, 0, nVerts*3),
		Normals:  make([]float32, 0, nVerts*3),
		UVs:      make([]float32, 0, nVerts*2),
		Indices:  make([]uint32, 0, nIdx),
	}

	yBot := center.Y - height/2
	yTop := center.Y + height/2

	// Side wall.
	for i := 0; i <= segments; i++ {
		phi := float64(i) * 2 * math.Pi / float64(segments)
		nx := math.Cos(phi)
		nz := math.Sin(phi)
		x := center.X + nx*radius
		z := center.Z + nz*radius
		u := float32(i) / float32(segments)

		m.Vertices = append(m.Vertices, float32(x), float32(yBot), float32(z))
		m.Normals = append(m.Normals, float32(nx), 0, float32(nz))
		m.UVs = append(m.UVs, u, 0)

		m.Vertices = append(m.Vertices, float32(x), float32(yTop), float32(z))
		m.Normals = append(m.Normals, float32(nx), 0, float32(nz))
		m.UVs = append(m.UVs, u, 1)
	}
	for i := 0; i < segments; i++ {
		b0 := uint32(2 * i)
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b0 + 3
		// Wound so the face looks outward (seen from outside the wall).
		m.Indices = append(m.Indices, b0, t0, b1)
		m.Indices = append(m.Indices, b1, t0, t1)
	}

	// Caps: a center vertex plus a rim ring, triangle-fanned.
	for _, end := range []struct {
		y  float64
		ny float64
	}{{yTop, 1}, {yBot, -1}} {
		centerIdx := uint32(len(m.Vertices) / 3)
		m.Vertices = append(m.Vertices, float32(center.X), float32(end.y), float32(center.Z))
		m.Normals = append(m.Normals, 0, float32(end.ny), 0)
		m.UVs = append(m.UVs, 0.5, 0.5)

		for i := 0; i <= segments; i++ {
			phi := float64(i) * 2 * math.Pi / float64(segments)
			cx := math.Cos(phi)
			cz := math.Sin(phi)
			m.Vertices = append(m.Vertices,
				float32(center.X+cx*radius), float32(end.y), float32(center.Z+cz*radius))
			m.Normals = append(m.Normals, 0, float32(end.ny), 0)
			m.UVs = append(m.UVs, float32(0.5+0.5*cx), float32(0.5+0.5*cz))
		}
		for i := 0; i < segments; i++ {
			rim := centerIdx + 1 + uint32(i)
			if end.ny > 0 {
				m.Indices = append(m.Indices, centerIdx, rim+1, rim)
			} else {
				m.Indices = append(m.Indices, centerIdx, rim, rim+1)
			}
		}
	}

	m.RecomputeBounds()
	return m, nil
}
