// Package objfile parses and writes a line-oriented OBJ-style geometry
// text format. The parser is tolerant: comments, blank lines and
// unrecognized record tags are skipped, and faces with fewer than three
// vertex references are ignored. Numeric fields that fail to parse abort
// the whole load with the offending line number, because silently dropping
// a record would desynchronize every later index reference.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/mesh"
)

// ParseError reports an unparseable record. Line numbers are 1-based.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Load reads and parses the file at path.
func Load(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = path
	}
	return m, nil
}

// ParseString parses OBJ-style text from a string.
func ParseString(s string) (*mesh.Mesh, error) {
	return Parse(strings.NewReader(s))
}

// cornerRef is one resolved corner of a face: 0-based position index plus
// optional texture/normal record indices (-1 when absent).
type cornerRef struct {
	v, vt, vn int
}

// parser accumulates records during the single pass over the input.
type parser struct {
	positions []v3.Vec
	texcoords [][2]float64
	normals   []v3.Vec
	faces     [][]cornerRef
	name      string
}

// Parse reads OBJ-style text and produces a mesh. Recognized record tags
// are v, vt, vn, f and o; everything else is ignored. Face indices are
// 1-based in the source (negative indices count back from the most recent
// record) and converted to 0-based internally. Faces with more than three
// corners are fan-triangulated. If the source carries no normals they are
// recomputed from face topology, area-weighted, after the pass.
func Parse(r io.Reader) (*mesh.Mesh, error) {
	p := &parser{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if err := p.record(fields, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p.build(), nil
}

// record dispatches one whitespace-split line.
func (p *parser) record(fields []string, line int) error {
	switch fields[0] {
	case "v":
		v, err := parseVec3(fields[1:], "vertex", line)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, v)
	case "vt":
		if len(fields) < 3 {
			return &ParseError{Line: line, Message: fmt.Sprintf("texcoord record has %d fields, want at least 2", len(fields)-1)}
		}
		u, err := parseFloat(fields[1], "texcoord", line)
		if err != nil {
			return err
		}
		w, err := parseFloat(fields[2], "texcoord", line)
		if err != nil {
			return err
		}
		p.texcoords = append(p.texcoords, [2]float64{u, w})
	case "vn":
		n, err := parseVec3(fields[1:], "normal", line)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, n)
	case "f":
		return p.face(fields[1:], line)
	case "o":
		if len(fields) > 1 {
			p.name = fields[1]
		}
	default:
		// Unrecognized record kind; forward-compatible, ignore.
	}
	return nil
}

// face parses an f record. Corners are v, v/vt, v//vn or v/vt/vn.
func (p *parser) face(args []string, line int) error {
	// Partial faces are tolerated, matching real exported files.
	if len(args) < 3 {
		return nil
	}

	corners := make([]cornerRef, 0, len(args))
	for _, arg := range args {
		parts := strings.Split(arg, "/")

		vi, err := p.resolveIndex(parts[0], len(p.positions), "vertex", line)
		if err != nil {
			return err
		}
		ref := cornerRef{v: vi, vt: -1, vn: -1}

		if len(parts) > 1 && parts[1] != "" {
			ref.vt, err = p.resolveIndex(parts[1], len(p.texcoords), "texcoord", line)
			if err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			ref.vn, err = p.resolveIndex(parts[2], len(p.normals), "normal", line)
			if err != nil {
				return err
			}
		}
		corners = append(corners, ref)
	}

	p.faces = append(p.faces, corners)
	return nil
}

// resolveIndex converts a 1-based (or negative, relative) source index to
// a 0-based index into a record list of length n.
func (p *parser) resolveIndex(s string, n int, what string, line int) (int, error) {
	raw, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Line: line, Message: fmt.Sprintf("bad %s index %q", what, s)}
	}
	var idx int
	switch {
	case raw > 0:
		idx = raw - 1
	case raw < 0:
		idx = n + raw
	default:
		return 0, &ParseError{Line: line, Message: fmt.Sprintf("%s index 0 is not valid", what)}
	}
	if idx < 0 || idx >= n {
		return 0, &ParseError{Line: line, Message: fmt.Sprintf("%s index %d out of range (have %d)", what, raw, n)}
	}
	return idx, nil
}

// build assembles the accumulated records into a mesh. The position list
// becomes the vertex buffer verbatim so that a round trip preserves vertex
// count and index triples. Texcoords and normals referenced by faces are
// scattered onto their position's slot.
func (p *parser) build() *mesh.Mesh {
	m := &mesh.Mesh{Name: p.name}

	m.Vertices = make([]float32, 0, len(p.positions)*3)
	for _, v := range p.positions {
		m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}

	hasUVs := false
	hasNormals := false
	for _, face := range p.faces {
		for _, c := range face {
			if c.vt >= 0 {
				hasUVs = true
			}
			if c.vn >= 0 {
				hasNormals = true
			}
		}
	}

	var uvs []float32
	var normals []float32
	if hasUVs {
		uvs = make([]float32, len(p.positions)*2)
	}
	if hasNormals {
		normals = make([]float32, len(p.positions)*3)
	}

	for _, face := range p.faces {
		// Fan triangulation around the first corner.
		for i := 1; i+1 < len(face); i++ {
			tri := [3]cornerRef{face[0], face[i], face[i+1]}
			for _, c := range tri {
				m.Indices = append(m.Indices, uint32(c.v))
				if c.vt >= 0 {
					uvs[2*c.v] = float32(p.texcoords[c.vt][0])
					uvs[2*c.v+1] = float32(p.texcoords[c.vt][1])
				}
				if c.vn >= 0 {
					n := p.normals[c.vn]
					normals[3*c.v] = float32(n.X)
					normals[3*c.v+1] = float32(n.Y)
					normals[3*c.v+2] = float32(n.Z)
				}
			}
		}
	}

	m.UVs = uvs
	m.Normals = normals
	if !hasNormals && len(m.Indices) > 0 {
		m.Normals = computeNormals(p.positions, m.Indices)
	}

	m.RecomputeBounds()
	return m
}

// computeNormals derives per-vertex normals by accumulating area-weighted
// face normals (the unnormalized cross product weights by triangle area)
// and normalizing. Deterministic for identical input.
func computeNormals(positions []v3.Vec, indices []uint32) []float32 {
	acc := make([]v3.Vec, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a := positions[indices[i]]
		b := positions[indices[i+1]]
		c := positions[indices[i+2]]
		fn := b.Sub(a).Cross(c.Sub(a))
		acc[indices[i]] = acc[indices[i]].Add(fn)
		acc[indices[i+1]] = acc[indices[i+1]].Add(fn)
		acc[indices[i+2]] = acc[indices[i+2]].Add(fn)
	}

	out := make([]float32, 0, len(positions)*3)
	for _, n := range acc {
		l := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
		if l > 0 {
			n = v3.Vec{X: n.X / l, Y: n.Y / l, Z: n.Z / l}
		}
		out = append(out, float32(n.X), float32(n.Y), float32(n.Z))
	}
	return out
}

// parseVec3 parses three float fields.
func parseVec3(fields []string, what string, line int) (v3.Vec, error) {
	if len(fields) < 3 {
		return v3.Vec{}, &ParseError{Line: line, Message: fmt.Sprintf("%s record has %d fields, want 3", what, len(fields))}
	}
	x, err := parseFloat(fields[0], what, line)
	if err != nil {
		return v3.Vec{}, err
	}
	y, err := parseFloat(fields[1], what, line)
	if err != nil {
		return v3.Vec{}, err
	}
	z, err := parseFloat(fields[2], what, line)
	if err != nil {
		return v3.Vec{}, err
	}
	return v3.Vec{X: x, Y: y, Z: z}, nil
}

// parseFloat parses one numeric field, attributing failures to the line.
func parseFloat(s, what string, line int) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Line: line, Message: fmt.Sprintf("bad %s value %q", what, s)}
	}
	return f, nil
}
