// Package scene records the entities, lights and polygons submitted for a
// frame. A frame may hold several scenes (the 3D view, HUD models); each
// RenderScene consumes what was added since the previous ClearScene.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/logger"
	"github.com/Faultbox/ironsight/pkg/math"
)

// ErrBadEntityType is returned for entities with an unknown type.
var ErrBadEntityType = errors.New("bad entity type")

// FogLocator finds the fog volume a box lies in. Zero means none.
type FogLocator interface {
	FogForBounds(b math.Bounds) int
}

// Drops counts submissions discarded because a limit was reached.
type Drops struct {
	Entities int
	DLights  int
	Polys    int
}

// Recorder accumulates submissions into the current frame.
type Recorder struct {
	frame  *Frame
	limits Limits

	firstEntity int
	firstDLight int
	firstPoly   int

	dynamicLights bool
	fogs          FogLocator
	drops         Drops
	log           *zap.Logger
}

// NewRecorder returns a recorder writing into a fresh frame.
func NewRecorder(limits Limits) *Recorder {
	return &Recorder{
		frame:         NewFrame(limits),
		limits:        limits,
		dynamicLights: true,
		log:           logger.Named("scene"),
	}
}

// SetFogLocator sets the world used to assign fog volumes to polys. Nil
// disables fog assignment.
func (r *Recorder) SetFogLocator(f FogLocator) {
	r.fogs = f
}

// SetDynamicLights enables or disables unforced dynamic lights.
func (r *Recorder) SetDynamicLights(on bool) {
	r.dynamicLights = on
}

// Begin switches to frame f and empties it. Called at the start of every
// frame with alternating storage.
func (r *Recorder) Begin(f *Frame) {
	f.Reset()
	r.frame = f
	r.firstEntity, r.firstDLight, r.firstPoly = 0, 0, 0
	r.drops = Drops{}
}

// Frame returns the frame being recorded.
func (r *Recorder) Frame() *Frame {
	return r.frame
}

// ClearScene starts a new scene inside the current frame.
func (r *Recorder) ClearScene() {
	r.firstEntity = len(r.frame.Entities)
	r.firstDLight = len(r.frame.DLights)
	r.firstPoly = len(r.frame.Polys)
}

// Current returns the submissions of the scene being built.
func (r *Recorder) Current() Scene {
	return Scene{
		Entities: r.frame.Entities[r.firstEntity:],
		DLights:  r.frame.DLights[r.firstDLight:],
		Polys:    r.frame.Polys[r.firstPoly:],
	}
}

// FirstEntity returns the frame index of the current scene's first entity.
func (r *Recorder) FirstEntity() int {
	return r.firstEntity
}

// Drops returns how many submissions were dropped this frame.
func (r *Recorder) Drops() Drops {
	return r.drops
}

// AddEntity records an entity. Entities past MaxEntities are dropped
// silently; unknown types are an error.
func (r *Recorder) AddEntity(e Entity) error {
	if e.Type < 0 || e.Type >= numEntityTypes {
		return fmt.Errorf("adding entity: %w: %d", ErrBadEntityType, e.Type)
	}
	if len(r.frame.Entities) >= MaxEntities {
		r.drops.Entities++
		return nil
	}
	r.frame.Entities = append(r.frame.Entities, e)
	return nil
}

// AddLight records a dynamic light. It reports whether the light was kept.
func (r *Recorder) AddLight(l DLight) bool {
	if len(r.frame.DLights) >= MaxDLights {
		r.drops.DLights++
		return false
	}
	if l.Radius <= 0 || l.Intensity <= 0 {
		return false
	}
	if !r.dynamicLights && l.Flags&Force == 0 {
		return false
	}
	r.frame.DLights = append(r.frame.DLights, l)
	return true
}

// AddPoly records a polygon and assigns it a fog volume. It reports whether
// the polygon was kept.
func (r *Recorder) AddPoly(shader asset.ShaderHandle, verts []PolyVert) bool {
	if shader == 0 {
		r.log.Warn("poly submitted without a shader")
		return false
	}
	if len(verts) < 3 {
		return false
	}
	if len(r.frame.Polys) >= r.limits.MaxPolys ||
		len(r.frame.PolyVerts)+len(verts) > r.limits.MaxPolyVerts {
		// common in heavy fights, so only a debug message
		r.log.Debug("poly limit reached", zap.Int("polys", len(r.frame.Polys)))
		r.drops.Polys++
		return false
	}

	start := len(r.frame.PolyVerts)
	r.frame.PolyVerts = append(r.frame.PolyVerts, verts...)
	p := Poly{
		Shader: shader,
		Verts:  r.frame.PolyVerts[start:len(r.frame.PolyVerts):len(r.frame.PolyVerts)],
	}

	if r.fogs != nil {
		b := math.EmptyBounds()
		for _, v := range p.Verts {
			b = b.AddPoint(v.Pos)
		}
		p.FogIndex = r.fogs.FogForBounds(b)
	}

	r.frame.Polys = append(r.frame.Polys, p)
	return true
}

// AddPolyVerts copies loose vertices into the frame's poly storage, for 2D
// polygons that travel through the command queue. It returns the stored
// slice, or false when the pool is full.
func (r *Recorder) AddPolyVerts(verts []PolyVert) ([]PolyVert, bool) {
	if len(r.frame.PolyVerts)+len(verts) > r.limits.MaxPolyVerts {
		r.drops.Polys++
		return nil, false
	}
	start := len(r.frame.PolyVerts)
	r.frame.PolyVerts = append(r.frame.PolyVerts, verts...)
	return r.frame.PolyVerts[start:len(r.frame.PolyVerts):len(r.frame.PolyVerts)], true
}
