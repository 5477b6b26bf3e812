package mesh_test

import (
	"testing"

	"github.com/chazu/treen/pkg/mesh"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    *mesh.Mesh
		wantErr bool
	}{
		{
			name: "valid triangle",
			mesh: makeTriangle("ok"),
		},
		{
			name: "empty mesh",
			mesh: &mesh.Mesh{},
		},
		{
			name:    "ragged vertex buffer",
			mesh:    &mesh.Mesh{Vertices: []float32{0, 0}},
			wantErr: true,
		},
		{
			name: "partial triangle",
			mesh: &mesh.Mesh{
				Vertices: []float32{0, 0, 0, 1, 0, 0},
				Indices:  []uint32{0, 1},
			},
			wantErr: true,
		},
		{
			name: "index out of range",
			mesh: &mesh.Mesh{
				Vertices: []float32{0, 0, 0},
				Indices:  []uint32{0, 0, 7},
			},
			wantErr: true,
		},
		{
			name: "short normals stream",
			mesh: &mesh.Mesh{
				Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
				Normals:  []float32{0, 0, 1},
				Indices:  []uint32{0, 1, 2},
			},
			wantErr: true,
		},
		{
			name: "short uv stream",
			mesh: &mesh.Mesh{
				Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
				UVs:      []float32{0, 0},
				Indices:  []uint32{0, 1, 2},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
