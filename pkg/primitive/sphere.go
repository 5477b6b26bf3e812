package primitive

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/mesh"
)

// Sphere generates a latitude/longitude sphere of the given radius around
// center. segments controls both ring and column count, so vertex count
// grows with segments^2; practical counts for figure parts are 4-16.
func Sphere(radius float64, segments int, center v3.Vec) (*mesh.Mesh, error) {
	if radius <= 0 {
		return nil, &ShapeParameterError{Shape: "sphere", Param: "radius", Value: radius}
	}
	if segments < 3 {
		return nil, &ShapeParameterError{Shape: "sphere", Param: "segments", Value: float64(segments)}
	}

	rings := segments
	cols := segments
	nVerts := (rings + 1) * (cols + 1)

	m := &mesh.Mesh{
		Name:     "sphere",
		Vertices: make([]float32, 0, nVerts*3),
		Normals:  make([]float32, 0, nVerts*3),
		UVs:      make([]float32, 0, nVerts*2),
		Indices:  make([]uint32, 0, rings*cols*6),
	}

	for ring := 0; ring <= rings; ring++ {
		theta := float64(ring) * math.Pi / float64(rings)
		sinTheta := math.Sin(theta)
		cosTheta := math.Cos(theta)

		for col := 0; col <= cols; col++ {
			phi := float64(col) * 2 * math.Pi / float64(cols)

			// Outward unit direction; doubles as the normal.
			nx := math.Cos(phi) * sinTheta
			ny := cosTheta
			nz := math.Sin(phi) * sinTheta

			m.Vertices = append(m.Vertices,
				float32(center.X+nx*radius),
				float32(center.Y+ny*radius),
				float32(center.Z+nz*radius))
			m.Normals = append(m.Normals, float32(nx), float32(ny), float32(nz))
			m.UVs = append(m.UVs,
				float32(col)/float32(cols),
				float32(ring)/float32(rings))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for col := 0; col < cols; col++ {
			current := uint32(ring*(cols+1) + col)
			next := current + uint32(cols) + 1

			// CCW seen from outside, matching the box and cylinder.
			m.Indices = append(m.Indices, current, current+1, next)
			m.Indices = append(m.Indices, current+1, next+1, next)
		}
	}

	m.RecomputeBounds()
	return m, nil
}
