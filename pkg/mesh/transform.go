package mesh

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Transform is a rigid placement applied to a part before combination:
// a rotation (Euler angles in degrees, applied X then Y then Z) followed
// by a translation.
type Transform struct {
	Translation v3.Vec `json:"translation"`
	Rotation    v3.Vec `json:"rotation"` // Euler angles in degrees
}

// Identity returns the do-nothing transform.
func Identity() Transform {
	return Transform{}
}

// Translate returns a pure translation transform.
func Translate(x, y, z float64) Transform {
	return Transform{Translation: v3.Vec{X: x, Y: y, Z: z}}
}

// hasRotation reports whether any Euler angle is non-zero.
func (t Transform) hasRotation() bool {
	return t.Rotation.X != 0 || t.Rotation.Y != 0 || t.Rotation.Z != 0
}

// rotationMatrix builds the rotation-only matrix for this transform.
func (t Transform) rotationMatrix() sdf.M44 {
	xRad := t.Rotation.X * math.Pi / 180.0
	yRad := t.Rotation.Y * math.Pi / 180.0
	zRad := t.Rotation.Z * math.Pi / 180.0
	return sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
}

// Apply transforms a position: rotate, then translate.
func (t Transform) Apply(v v3.Vec) v3.Vec {
	if t.hasRotation() {
		v = t.rotationMatrix().MulPosition(v)
	}
	return v.Add(t.Translation)
}

// ApplyNormal transforms a direction, ignoring the translation. For rigid
// rotations the same matrix is valid for normals.
func (t Transform) ApplyNormal(n v3.Vec) v3.Vec {
	if !t.hasRotation() {
		return n
	}
	return t.rotationMatrix().MulPosition(n)
}
