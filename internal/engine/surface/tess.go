package surface

import (
	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Default arena sizes.
const (
	DefaultMaxVerts   = 4000
	DefaultMaxIndexes = 6 * DefaultMaxVerts
)

// FlareSink receives the flare points met while tessellating.
type FlareSink interface {
	AddFlare(key Surface, fogNum int, origin, color, normal math.Vec3)
}

// Tess is the vertex and index arena one batch is built in.
type Tess struct {
	Shader    *asset.Shader
	FogNum    int
	Dlighted  bool
	FrontFace bool

	Verts   []Vertex
	Indexes []uint32

	MaxVerts   int
	MaxIndexes int

	// Per-entity context, set by the executor on entity changes.
	Entity     *scene.Entity // nil for world geometry
	ViewOrigin math.Vec3     // viewer in the current entity's space
	ViewAxis   math.Axis     // viewer axis in the current entity's space
	IsMirror   bool

	// DLights are the view's lights, transformed into the current
	// entity's space. Dlighted batches are lit by them.
	DLights []scene.DLight

	// Time is the shader clock in seconds.
	Time float32

	Flares FlareSink

	// Flush draws and empties the arena when a surface does not fit.
	Flush func()

	// Bad counts surfaces that could not be tessellated.
	Bad int
}

// NewTess allocates an arena of the given size.
func NewTess(maxVerts, maxIndexes int) *Tess {
	return &Tess{
		Verts:      make([]Vertex, 0, maxVerts),
		Indexes:    make([]uint32, 0, maxIndexes),
		MaxVerts:   maxVerts,
		MaxIndexes: maxIndexes,
	}
}

// Begin starts a batch for shader in fog volume fogNum.
func (t *Tess) Begin(shader *asset.Shader, fogNum int) {
	t.Shader = shader
	t.FogNum = fogNum
	t.Reset()
}

// Reset empties the arena and keeps the batch state.
func (t *Tess) Reset() {
	t.Verts = t.Verts[:0]
	t.Indexes = t.Indexes[:0]
}

// Empty reports whether nothing has been tessellated since the last reset.
func (t *Tess) Empty() bool {
	return len(t.Indexes) == 0
}

// Reserve makes room for nv vertices and ni indexes, flushing the batch
// when they do not fit. It returns false when the request can never fit.
func (t *Tess) Reserve(nv, ni int) bool {
	if len(t.Verts)+nv <= t.MaxVerts && len(t.Indexes)+ni <= t.MaxIndexes {
		return true
	}
	if nv > t.MaxVerts || ni > t.MaxIndexes {
		t.Bad++
		return false
	}
	if t.Flush != nil {
		t.Flush()
	}
	t.Reset()
	return true
}

// Add tessellates one surface into the arena.
func (t *Tess) Add(s Surface) {
	k := s.Kind()
	if k < 0 || k >= NumKinds {
		t.Bad++
		return
	}
	tessellators[k](t, s)
}

// AddQuadStamp appends a quad centered on origin spanning left and up.
func (t *Tess) AddQuadStamp(origin, left, up math.Vec3, color [4]uint8) {
	t.AddQuadStampExt(origin, left, up, color, 0, 0, 1, 1)
}

// AddQuadStampExt is AddQuadStamp with explicit texture coordinates.
func (t *Tess) AddQuadStampExt(origin, left, up math.Vec3, color [4]uint8, s1, t1, s2, t2 float32) {
	if !t.Reserve(4, 6) {
		return
	}
	base := uint32(len(t.Verts))
	normal := t.ViewAxis[0].Negate()

	t.Verts = append(t.Verts,
		Vertex{Pos: origin.Add(left).Add(up), Normal: normal, ST: [2]float32{s1, t1}, Color: color},
		Vertex{Pos: origin.Sub(left).Add(up), Normal: normal, ST: [2]float32{s2, t1}, Color: color},
		Vertex{Pos: origin.Sub(left).Sub(up), Normal: normal, ST: [2]float32{s2, t2}, Color: color},
		Vertex{Pos: origin.Add(left).Sub(up), Normal: normal, ST: [2]float32{s1, t2}, Color: color},
	)
	t.Indexes = append(t.Indexes, base, base+1, base+3, base+3, base+1, base+2)
}

func (t *Tess) appendIndexed(verts []Vertex, indexes []uint32) {
	if len(indexes) == 0 || !t.Reserve(len(verts), len(indexes)) {
		return
	}
	base := uint32(len(t.Verts))
	t.Verts = append(t.Verts, verts...)
	for _, i := range indexes {
		t.Indexes = append(t.Indexes, base+i)
	}
}
