package main

import (
	"context"
	"errors"
	"log"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/treen/pkg/engine"
	"github.com/chazu/treen/pkg/figure"
	"github.com/chazu/treen/pkg/mesh"
	"github.com/chazu/treen/pkg/objfile"
	"github.com/chazu/treen/pkg/primitive"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
// Buffer shapes match the viewer's expectations: flat positions, optional
// matching-length normals/uvs/colors, triangle-list indices.
type MeshData struct {
	Vertices  []float32  `json:"vertices"`
	Normals   []float32  `json:"normals"`
	UVs       []float32  `json:"uvs"`
	Colors    []float32  `json:"colors"`
	Indices   []uint32   `json:"indices"`
	Name      string     `json:"name"`
	BoundsMin [3]float64 `json:"boundsMin"`
	BoundsMax [3]float64 `json:"boundsMax"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of a script evaluation.
type EvalResult struct {
	Mesh   *MeshData       `json:"mesh"`
	Errors []EvalErrorData `json:"errors"`
}

// LoadResult is the result of loading a mesh file. When the file fails to
// parse, Placeholder is true and Mesh carries a visible substitute box so
// the import pipeline degrades instead of crashing.
type LoadResult struct {
	Mesh        *MeshData `json:"mesh"`
	Error       string    `json:"error,omitempty"`
	Placeholder bool      `json:"placeholder"`
}

// NewApp creates a new App with a script engine.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
	}
}

// startup is called by Wails on app startup. The context is saved so we
// can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// meshData converts a mesh to the frontend format.
func meshData(m *mesh.Mesh) *MeshData {
	return &MeshData{
		Vertices:  m.Vertices,
		Normals:   m.Normals,
		UVs:       m.UVs,
		Colors:    m.Colors,
		Indices:   m.Indices,
		Name:      m.Name,
		BoundsMin: [3]float64{m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z},
		BoundsMax: [3]float64{m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z},
	}
}

// Evaluate takes Lisp source and returns the combined assembly mesh plus
// errors. This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{Errors: []EvalErrorData{}}

	asm, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	combined, err := asm.Combine()
	if err != nil {
		log.Printf("Combine error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "combine failed: " + err.Error()})
		return result
	}

	result.Mesh = meshData(combined)
	return result
}

// BuildFigure assembles a character from the given config and returns the
// combined mesh. Any part failure aborts the whole build.
func (a *App) BuildFigure(cfg figure.Config) EvalResult {
	result := EvalResult{Errors: []EvalErrorData{}}

	m, err := figure.BuildCharacter(cfg)
	if err != nil {
		log.Printf("BuildFigure error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	result.Mesh = meshData(m)
	return result
}

// placeholderMesh is the visible substitute shown when a file fails to
// parse: a unit box, deliberately obvious.
func placeholderMesh() *mesh.Mesh {
	m, err := primitive.Box(v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, v3.Vec{})
	if err != nil {
		panic(err) // constant parameters, cannot fail
	}
	m.Name = "placeholder"
	return m
}

// LoadMeshFile parses an OBJ-style text file into a mesh. A parse failure
// is reported together with a placeholder mesh so the caller shows a
// visible degradation instead of nothing; other failures (unreadable file)
// report the error alone.
func (a *App) LoadMeshFile(path string) LoadResult {
	m, err := objfile.Load(path)
	if err == nil {
		return LoadResult{Mesh: meshData(m)}
	}

	log.Printf("LoadMeshFile %s: %v", path, err)
	var perr *objfile.ParseError
	if errors.As(err, &perr) {
		return LoadResult{
			Mesh:        meshData(placeholderMesh()),
			Error:       err.Error(),
			Placeholder: true,
		}
	}
	return LoadResult{Error: err.Error()}
}
