// Package figure assembles complete multi-part models from primitive
// generators. Each driver is a declarative table of part specs (shape
// kind, parameters, offset, color) processed by one loop; the drivers own
// no geometry algorithm themselves.
package figure

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/mesh"
	"github.com/chazu/treen/pkg/primitive"
)

// Kind selects a primitive generator for a part.
type Kind int

const (
	KindSphere Kind = iota
	KindCylinder
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	case KindBox:
		return "box"
	default:
		return "unknown"
	}
}

// PartSpec describes one sub-shape of an assembly: which generator to
// call, its shape parameters, where to place it, and its uniform vertex
// color. Specs are built per invocation and discarded after the combine.
type PartSpec struct {
	Name     string
	Kind     Kind
	Radius   float64 // sphere, cylinder
	Height   float64 // cylinder
	Segments int     // sphere, cylinder
	Half     v3.Vec  // box half extents
	Offset   v3.Vec  // local placement, scaled with the assembly
	Color    mesh.RGBA
}

// Build generates, colors and combines an ordered list of part specs.
// scale multiplies every offset and every shape dimension, preserving
// relative proportions. Any part failure aborts the whole build; a model
// with missing limbs is worse than no model.
func Build(specs []PartSpec, scale float64) (*mesh.Mesh, error) {
	if scale <= 0 {
		return nil, &primitive.ShapeParameterError{Shape: "assembly", Param: "scale", Value: scale}
	}

	parts := make([]mesh.Part, 0, len(specs))
	for _, spec := range specs {
		m, err := generate(spec, scale)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", spec.Name, err)
		}
		if _, err := mesh.ApplyUniformColor(m, spec.Color); err != nil {
			return nil, fmt.Errorf("part %q: %w", spec.Name, err)
		}
		m.Name = spec.Name
		parts = append(parts, mesh.Part{
			Mesh:      m,
			Transform: mesh.Transform{Translation: spec.Offset.MulScalar(scale)},
		})
	}

	out, err := mesh.Combine(parts)
	if err != nil {
		return nil, fmt.Errorf("combine: %w", err)
	}
	return out, nil
}

// generate calls the matching primitive generator, at the origin; the
// combiner applies the scaled offset.
func generate(spec PartSpec, scale float64) (*mesh.Mesh, error) {
	switch spec.Kind {
	case KindSphere:
		return primitive.Sphere(spec.Radius*scale, spec.Segments, v3.Vec{})
	case KindCylinder:
		return primitive.Cylinder(spec.Radius*scale, spec.Height*scale, spec.Segments, v3.Vec{})
	case KindBox:
		return primitive.Box(spec.Half.MulScalar(scale), v3.Vec{})
	default:
		return nil, fmt.Errorf("unknown part kind %d", spec.Kind)
	}
}
