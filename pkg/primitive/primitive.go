// Package primitive generates parametric primitive meshes: UV spheres,
// capped cylinders, and boxes. All generators produce outward normals, a
// simple cylindrical or planar unwrap, and a fixed translation by a center
// offset. There is no rotation parameter; callers rotate after generation.
//
// Segment counts control density along the curved axis only. Character
// assembly uses counts in the 4-16 range; the generators never clamp.
package primitive

import "fmt"

// ShapeParameterError reports an invalid generator argument. Generators
// fail rather than silently clamping.
type ShapeParameterError struct {
	Shape string  // "sphere", "cylinder", "box", ...
	Param string  // which argument is bad
	Value float64 // the offending value
}

func (e *ShapeParameterError) Error() string {
	return fmt.Sprintf("%s: %s is %g, must be %s", e.Shape, e.Param, e.Value, e.constraint())
}

func (e *ShapeParameterError) constraint() string {
	if e.Param == "segments" {
		return "at least 3"
	}
	return "positive"
}
