package figure

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/mesh"
)

// Config holds the recognized character parameters. Height is the overall
// scale: it multiplies every offset and every shape dimension, so one
// number reshapes the whole assembly. The width fields are per-region
// multipliers relative to the base proportions.
type Config struct {
	Height           float64   `json:"height"`
	BodyWidth        float64   `json:"bodyWidth"`
	ShoulderWidth    float64   `json:"shoulderWidth"`
	HipWidth         float64   `json:"hipWidth"`
	CylinderSegments int       `json:"cylinderSegments"` // radial resolution of limbs
	SkinColor        mesh.RGBA `json:"skinColor"`
}

// DefaultConfig returns the base character proportions at scale 1.
func DefaultConfig() Config {
	return Config{
		Height:           1.0,
		BodyWidth:        1.0,
		ShoulderWidth:    1.0,
		HipWidth:         1.0,
		CylinderSegments: 8,
		SkinColor:        mesh.RGBA{R: 0.76, G: 0.57, B: 0.42, A: 1},
	}
}

// sphereSegments is the fixed resolution for joint and head spheres.
// Limb cylinders use Config.CylinderSegments instead.
const sphereSegments = 8

// CharacterSpecs returns the ordered part table for a humanoid figure at
// the config's proportions, before overall scaling. The base offsets put
// the feet near y=0 and the top of the head near y=1.8.
func CharacterSpecs(cfg Config) []PartSpec {
	skin := cfg.SkinColor
	segs := cfg.CylinderSegments

	specs := []PartSpec{
		{Name: "head", Kind: KindSphere, Radius: 0.25, Segments: sphereSegments,
			Offset: v3.Vec{Y: 1.55}, Color: skin},
		{Name: "neck", Kind: KindCylinder, Radius: 0.08, Height: 0.15, Segments: segs,
			Offset: v3.Vec{Y: 1.375}, Color: skin},
		{Name: "torso", Kind: KindBox,
			Half:   v3.Vec{X: 0.25 * cfg.BodyWidth, Y: 0.25, Z: 0.15},
			Offset: v3.Vec{Y: 1.05}, Color: skin},
		{Name: "pelvis", Kind: KindBox,
			Half:   v3.Vec{X: 0.22 * cfg.HipWidth, Y: 0.12, Z: 0.14},
			Offset: v3.Vec{Y: 0.675}, Color: skin},
	}

	// Mirrored limb parts, left then right for each row.
	for _, side := range []struct {
		tag  string
		sign float64
	}{{"left", -1}, {"right", 1}} {
		shoulderX := side.sign * 0.33 * cfg.ShoulderWidth
		armX := side.sign * 0.35 * cfg.ShoulderWidth
		legX := side.sign * 0.14 * cfg.HipWidth

		specs = append(specs,
			PartSpec{Name: side.tag + "-shoulder", Kind: KindSphere, Radius: 0.11, Segments: sphereSegments,
				Offset: v3.Vec{X: shoulderX, Y: 1.25}, Color: skin},
			PartSpec{Name: side.tag + "-upper-arm", Kind: KindCylinder, Radius: 0.07, Height: 0.3, Segments: segs,
				Offset: v3.Vec{X: armX, Y: 1.05}, Color: skin},
			PartSpec{Name: side.tag + "-elbow", Kind: KindSphere, Radius: 0.08, Segments: sphereSegments,
				Offset: v3.Vec{X: armX, Y: 0.875}, Color: skin},
			PartSpec{Name: side.tag + "-forearm", Kind: KindCylinder, Radius: 0.06, Height: 0.28, Segments: segs,
				Offset: v3.Vec{X: armX, Y: 0.72}, Color: skin},
			PartSpec{Name: side.tag + "-hand", Kind: KindSphere, Radius: 0.08, Segments: sphereSegments,
				Offset: v3.Vec{X: armX, Y: 0.54}, Color: skin},
			PartSpec{Name: side.tag + "-thigh", Kind: KindCylinder, Radius: 0.09, Height: 0.35, Segments: segs,
				Offset: v3.Vec{X: legX, Y: 0.45}, Color: skin},
			PartSpec{Name: side.tag + "-knee", Kind: KindSphere, Radius: 0.09, Segments: sphereSegments,
				Offset: v3.Vec{X: legX, Y: 0.25}, Color: skin},
			PartSpec{Name: side.tag + "-shin", Kind: KindCylinder, Radius: 0.075, Height: 0.3, Segments: segs,
				Offset: v3.Vec{X: legX, Y: 0.12}, Color: skin},
			PartSpec{Name: side.tag + "-foot", Kind: KindBox,
				Half:   v3.Vec{X: 0.08, Y: 0.04, Z: 0.14},
				Offset: v3.Vec{X: legX, Y: 0.02, Z: 0.05}, Color: skin},
		)
	}

	return specs
}

// BuildCharacter assembles a complete humanoid figure mesh. Config.Height
// is the overall scale applied to every part dimension and offset.
func BuildCharacter(cfg Config) (*mesh.Mesh, error) {
	m, err := Build(CharacterSpecs(cfg), cfg.Height)
	if err != nil {
		return nil, err
	}
	m.Name = "character"
	return m, nil
}
