package asset

import "github.com/Faultbox/ironsight/pkg/math"

// ModelHandle identifies a registered model. Zero is the bad model.
type ModelHandle int

// ModelType tells the renderer how to emit a model's surfaces.
type ModelType int

const (
	ModelBad ModelType = iota
	ModelBrush
	ModelMesh
)

func (t ModelType) String() string {
	switch t {
	case ModelBrush:
		return "brush"
	case ModelMesh:
		return "mesh"
	default:
		return "bad"
	}
}

// Model is a renderable resolved from a ModelHandle.
type Model struct {
	Name  string
	Index int
	Type  ModelType

	// Brush indexes the world's inline models when Type is ModelBrush.
	Brush int

	// LODs holds mesh detail levels, highest detail first.
	LODs []*Mesh
}

// NumLODs returns the number of detail levels.
func (m *Model) NumLODs() int {
	return len(m.LODs)
}

// Frame is per-frame bounding data of a mesh.
type Frame struct {
	Bounds      math.Bounds
	LocalOrigin math.Vec3
	Radius      float32
}

// Mesh is one detail level of an animated model.
type Mesh struct {
	Name     string
	Frames   []Frame
	Surfaces []*MeshSurface
}

// MeshVertex is one animated vertex position and normal.
type MeshVertex struct {
	Pos    math.Vec3
	Normal math.Vec3
}

// MeshSurface is a named triangle set inside a mesh. Vertices are stored per
// frame, all frames sharing the same texture coordinates and indexes.
type MeshSurface struct {
	Name     string
	Shaders  []*Shader
	Indexes  []uint32
	ST       [][2]float32
	Vertices [][]MeshVertex
}

// NewBoxMesh builds a single-frame mesh for an axis-aligned box, mostly
// useful for tests and debug geometry.
func NewBoxMesh(name string, b math.Bounds, shader *Shader) *Mesh {
	surf := &MeshSurface{Name: name, Shaders: []*Shader{shader}}

	faces := [6]struct {
		normal  math.Vec3
		corners [4]int
	}{
		{math.Vec3{X: -1}, [4]int{0, 4, 6, 2}},
		{math.Vec3{X: 1}, [4]int{1, 3, 7, 5}},
		{math.Vec3{Y: -1}, [4]int{0, 1, 5, 4}},
		{math.Vec3{Y: 1}, [4]int{2, 6, 7, 3}},
		{math.Vec3{Z: -1}, [4]int{0, 2, 3, 1}},
		{math.Vec3{Z: 1}, [4]int{4, 5, 7, 6}},
	}

	var verts []MeshVertex
	for _, f := range faces {
		base := uint32(len(verts))
		for i, c := range f.corners {
			verts = append(verts, MeshVertex{Pos: b.Corner(c), Normal: f.normal})
			surf.ST = append(surf.ST, [2]float32{float32(i & 1), float32(i >> 1)})
		}
		surf.Indexes = append(surf.Indexes, base, base+1, base+2, base, base+2, base+3)
	}
	surf.Vertices = [][]MeshVertex{verts}

	return &Mesh{
		Name:     name,
		Frames:   []Frame{{Bounds: b, LocalOrigin: b.Center(), Radius: b.Max.Sub(b.Center()).Length()}},
		Surfaces: []*MeshSurface{surf},
	}
}
