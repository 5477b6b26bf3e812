package objfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/treen/pkg/mesh"
)

// Encode writes m in the text grammar recognized by Parse. Vertex order is
// preserved, so Encode followed by Parse reproduces the same vertex count
// and the same triangle index triples.
func Encode(w io.Writer, m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	bw := bufio.NewWriter(w)

	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}

	n := m.VertexCount()
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, "v %g %g %g\n", m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2])
	}
	hasUVs := len(m.UVs) != 0
	hasNormals := len(m.Normals) != 0
	for i := 0; hasUVs && i < n; i++ {
		fmt.Fprintf(bw, "vt %g %g\n", m.UVs[2*i], m.UVs[2*i+1])
	}
	for i := 0; hasNormals && i < n; i++ {
		fmt.Fprintf(bw, "vn %g %g %g\n", m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2])
	}

	// Texcoord and normal lists are written vertex-aligned, so each corner
	// reuses one 1-based index for all three slots.
	for i := 0; i+2 < len(m.Indices); i += 3 {
		bw.WriteString("f")
		for j := 0; j < 3; j++ {
			idx := m.Indices[i+j] + 1
			switch {
			case hasUVs && hasNormals:
				fmt.Fprintf(bw, " %d/%d/%d", idx, idx, idx)
			case hasUVs:
				fmt.Fprintf(bw, " %d/%d", idx, idx)
			case hasNormals:
				fmt.Fprintf(bw, " %d//%d", idx, idx)
			default:
				fmt.Fprintf(bw, " %d", idx)
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
