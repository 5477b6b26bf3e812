package figure

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/mesh"
)

// Prop colors.
var (
	steel = mesh.RGBA{R: 0.75, G: 0.77, B: 0.8, A: 1}
	iron  = mesh.RGBA{R: 0.35, G: 0.35, B: 0.38, A: 1}
	wood  = mesh.RGBA{R: 0.45, G: 0.3, B: 0.15, A: 1}
)

// SwordSpecs returns the part table for a simple sword prop, grip at the
// origin, blade pointing up. Base length is about 1.1 units.
func SwordSpecs(segments int) []PartSpec {
	return []PartSpec{
		{Name: "grip", Kind: KindCylinder, Radius: 0.03, Height: 0.2, Segments: segments,
			Offset: v3.Vec{Y: 0.1}, Color: wood},
		{Name: "pommel", Kind: KindSphere, Radius: 0.045, Segments: segments,
			Offset: v3.Vec{}, Color: iron},
		{Name: "guard", Kind: KindBox, Half: v3.Vec{X: 0.12, Y: 0.02, Z: 0.03},
			Offset: v3.Vec{Y: 0.22}, Color: iron},
		{Name: "blade", Kind: KindBox, Half: v3.Vec{X: 0.035, Y: 0.4, Z: 0.01},
			Offset: v3.Vec{Y: 0.64}, Color: steel},
		{Name: "tip", Kind: KindSphere, Radius: 0.035, Segments: segments,
			Offset: v3.Vec{Y: 1.04}, Color: steel},
	}
}

// BuildSword assembles a sword prop sized to match a character built with
// the same config: Height scales it, CylinderSegments sets resolution.
func BuildSword(cfg Config) (*mesh.Mesh, error) {
	m, err := Build(SwordSpecs(cfg.CylinderSegments), cfg.Height)
	if err != nil {
		return nil, err
	}
	m.Name = "sword"
	return m, nil
}
