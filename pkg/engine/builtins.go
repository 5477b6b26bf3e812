package engine

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/treen/pkg/figure"
	"github.com/chazu/treen/pkg/mesh"
	"github.com/chazu/treen/pkg/primitive"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms treen Lisp source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with user-defined variables of the same name.
//
//  2. ; line comments become // comments, which is what zygomys expects.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword". := is left alone.
		if b[i] == ':' && i+1 < len(b) && b[i+1] != '=' && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, []byte(kwPrefix)...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a v3.Vec.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.2f %.2f %.2f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpColor wraps a mesh.RGBA.
type sexpColor struct {
	color mesh.RGBA
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rgba %.2f %.2f %.2f %.2f)", c.color.R, c.color.G, c.color.B, c.color.A)
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if len(str.S) > len(kwPrefix) && str.S[:len(kwPrefix)] == kwPrefix {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a v3.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toColor extracts an RGBA from a sexpColor or a "#rrggbb" string.
func toColor(s zygo.Sexp) (mesh.RGBA, error) {
	switch v := s.(type) {
	case *sexpColor:
		return v.color, nil
	case *zygo.SexpStr:
		return mesh.ParseColor(v.S)
	}
	return mesh.RGBA{}, fmt.Errorf("expected color, got %T (%s)", s, s.SexpString(nil))
}

// placement holds the shared :at / :rotate / :name / :color arguments of
// every shape form.
type placement struct {
	at     v3.Vec
	rotate v3.Vec
	name   string
	color  mesh.RGBA
	hasCol bool
}

func parsePlacement(pa kwArgs) (placement, error) {
	var p placement
	if v, ok := pa.kw["at"]; ok {
		at, err := toVec3(v)
		if err != nil {
			return p, fmt.Errorf("at: %w", err)
		}
		p.at = at
	}
	if v, ok := pa.kw["rotate"]; ok {
		rot, err := toVec3(v)
		if err != nil {
			return p, fmt.Errorf("rotate: %w", err)
		}
		p.rotate = rot
	}
	if v, ok := pa.kw["name"]; ok {
		s, err := toString(v)
		if err != nil {
			return p, fmt.Errorf("name: %w", err)
		}
		p.name = s
	}
	if v, ok := pa.kw["color"]; ok {
		c, err := toColor(v)
		if err != nil {
			return p, fmt.Errorf("color: %w", err)
		}
		p.color = c
		p.hasCol = true
	}
	return p, nil
}

// floatArg reads an optional keyword number with a default.
func floatArg(pa kwArgs, name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// intArg reads an optional keyword integer with a default.
func intArg(pa kwArgs, name string, def int) (int, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// addPart colors, names and appends a generated mesh to the assembly.
func addPart(asm *Assembly, m *mesh.Mesh, p placement) error {
	if p.hasCol {
		if _, err := mesh.ApplyUniformColor(m, p.color); err != nil {
			return err
		}
	}
	if p.name != "" {
		m.Name = p.name
	}
	asm.Parts = append(asm.Parts, mesh.Part{
		Mesh:      m,
		Transform: mesh.Transform{Translation: p.at, Rotation: p.rotate},
	})
	return nil
}

// registerBuiltins installs the treen DSL builtins into a zygomys
// environment. The builtins append placed parts to asm during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, asm *Assembly) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: want 3 arguments, got %d", len(args))
		}
		var v v3.Vec
		for i, dst := range []*float64{&v.X, &v.Y, &v.Z} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			*dst = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (rgba r g b a), components in [0,1], alpha optional
	// -----------------------------------------------------------------------
	env.AddFunction("rgba", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 && len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("rgba: want 3 or 4 arguments, got %d", len(args))
		}
		c := mesh.RGBA{A: 1}
		dsts := []*float32{&c.R, &c.G, &c.B, &c.A}
		for i := range args {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rgba: %w", err)
			}
			*dsts[i] = float32(f)
		}
		return &sexpColor{color: c}, nil
	})

	// -----------------------------------------------------------------------
	// (color "#rrggbb")
	// -----------------------------------------------------------------------
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("color: want 1 argument, got %d", len(args))
		}
		s, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}
		c, err := mesh.ParseColor(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}
		return &sexpColor{color: c}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 0.5 :segments 8 :at (vec3 0 1 0) :color "#c09068")
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		radius, err := floatArg(pa, "radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		segments, err := intArg(pa, "segments", 8)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		p, err := parsePlacement(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		m, err := primitive.Sphere(radius, segments, v3.Vec{})
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := addPart(asm, m, p); err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &zygo.SexpStr{S: m.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :radius 0.1 :height 0.4 :segments 8 :at ... :color ...)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		radius, err := floatArg(pa, "radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		height, err := floatArg(pa, "height", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		segments, err := intArg(pa, "segments", 8)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		p, err := parsePlacement(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		m, err := primitive.Cylinder(radius, height, segments, v3.Vec{})
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := addPart(asm, m, p); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &zygo.SexpStr{S: m.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (box :half (vec3 1 1 1) :at ... :color ...)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		half := v3.Vec{X: 1, Y: 1, Z: 1}
		if v, ok := pa.kw["half"]; ok {
			h, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: half: %w", err)
			}
			half = h
		}
		p, err := parsePlacement(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		m, err := primitive.Box(half, v3.Vec{})
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := addPart(asm, m, p); err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return &zygo.SexpStr{S: m.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (figure :height 1.0 :body-width 1.0 :shoulder-width 1.0 :hip-width 1.0
	//         :segments 8 :skin-color "#c09068" :at (vec3 0 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("figure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cfg := figure.DefaultConfig()

		var err error
		if cfg.Height, err = floatArg(pa, "height", cfg.Height); err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}
		if cfg.BodyWidth, err = floatArg(pa, "body-width", cfg.BodyWidth); err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}
		if cfg.ShoulderWidth, err = floatArg(pa, "shoulder-width", cfg.ShoulderWidth); err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}
		if cfg.HipWidth, err = floatArg(pa, "hip-width", cfg.HipWidth); err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}
		if cfg.CylinderSegments, err = intArg(pa, "segments", cfg.CylinderSegments); err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}
		if v, ok := pa.kw["skin-color"]; ok {
			c, err := toColor(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("figure: skin-color: %w", err)
			}
			cfg.SkinColor = c
		}
		p, err := parsePlacement(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}

		m, err := figure.BuildCharacter(cfg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}
		if err := addPart(asm, m, p); err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: %w", err)
		}
		return &zygo.SexpStr{S: m.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (sword :height 1.0 :segments 8 :at ... :rotate ...)
	// -----------------------------------------------------------------------
	env.AddFunction("sword", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cfg := figure.DefaultConfig()

		var err error
		if cfg.Height, err = floatArg(pa, "height", cfg.Height); err != nil {
			return zygo.SexpNull, fmt.Errorf("sword: %w", err)
		}
		if cfg.CylinderSegments, err = intArg(pa, "segments", cfg.CylinderSegments); err != nil {
			return zygo.SexpNull, fmt.Errorf("sword: %w", err)
		}
		p, err := parsePlacement(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sword: %w", err)
		}

		m, err := figure.BuildSword(cfg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sword: %w", err)
		}
		if err := addPart(asm, m, p); err != nil {
			return zygo.SexpNull, fmt.Errorf("sword: %w", err)
		}
		return &zygo.SexpStr{S: m.Name}, nil
	})
}
