// Package surface defines the drawable surface kinds, the sort key that
// orders them, and the tessellation arena the back end fills batches from.
//
// Every kind is dispatched through a table indexed by Kind, one
// tessellator per kind.
package surface

import (
	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Kind tags a surface's geometry type.
type Kind int

const (
	KindBad Kind = iota
	KindSkip
	KindFace
	KindTriangles
	KindFoliage
	KindPoly
	KindMesh
	KindEntity
	KindFlare
	NumKinds
)

var kindNames = [NumKinds]string{"bad", "skip", "face", "triangles", "foliage", "poly", "mesh", "entity", "flare"}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "invalid"
	}
	return kindNames[k]
}

// Surface is anything that can be put in a draw list.
type Surface interface {
	Kind() Kind
}

// Vertex is one tessellated vertex.
type Vertex struct {
	Pos    math.Vec3
	Normal math.Vec3
	ST     [2]float32
	Color  [4]uint8
}

// Face is a planar world polygon.
type Face struct {
	Plane   math.Plane
	Bounds  math.Bounds
	Verts   []Vertex
	Indexes []uint32
}

// Triangles is an arbitrary world triangle soup.
type Triangles struct {
	Bounds  math.Bounds
	Verts   []Vertex
	Indexes []uint32
}

// FoliageInstance places one copy of a foliage model.
type FoliageInstance struct {
	Origin math.Vec3
	Color  [4]uint8
}

// Foliage repeats a small triangle set at many origins. Instances farther
// than DrawDistance from the viewer are skipped when DrawDistance is set.
type Foliage struct {
	Bounds       math.Bounds
	Verts        []Vertex
	Indexes      []uint32
	Instances    []FoliageInstance
	DrawDistance float32
}

// Poly is a scene polygon.
type Poly scene.Poly

// Mesh is one surface of an animated model.
type Mesh asset.MeshSurface

// Entity stands for the geometry of the entity currently being drawn
// (sprites, beams, the axis of a missing model).
type Entity struct{}

// Flare is a light flare point on a world surface.
type Flare struct {
	Origin math.Vec3
	Normal math.Vec3
	Color  math.Vec3
}

// Bad marks a surface that should never be drawn.
type Bad struct{}

// Skip is a placeholder that draws nothing.
type Skip struct{}

func (*Face) Kind() Kind      { return KindFace }
func (*Triangles) Kind() Kind { return KindTriangles }
func (*Foliage) Kind() Kind   { return KindFoliage }
func (*Poly) Kind() Kind      { return KindPoly }
func (*Mesh) Kind() Kind      { return KindMesh }
func (Entity) Kind() Kind     { return KindEntity }
func (*Flare) Kind() Kind     { return KindFlare }
func (Bad) Kind() Kind        { return KindBad }
func (Skip) Kind() Kind       { return KindSkip }

// BoundsOf returns the world bounds of surfaces that carry them.
func BoundsOf(s Surface) (math.Bounds, bool) {
	switch s := s.(type) {
	case *Face:
		return s.Bounds, true
	case *Triangles:
		return s.Bounds, true
	case *Foliage:
		return s.Bounds, true
	case *Poly:
		b := math.EmptyBounds()
		for _, v := range s.Verts {
			b = b.AddPoint(v.Pos)
		}
		return b, len(s.Verts) > 0
	}
	return math.Bounds{}, false
}

// PlaneOf returns the plane a surface lies in. Surfaces without a natural
// plane return the +X plane through the origin.
func PlaneOf(s Surface) math.Plane {
	switch s := s.(type) {
	case *Face:
		return s.Plane
	case *Triangles:
		if len(s.Indexes) >= 3 {
			if p, ok := math.PlaneFromPoints(
				s.Verts[s.Indexes[0]].Pos,
				s.Verts[s.Indexes[1]].Pos,
				s.Verts[s.Indexes[2]].Pos,
			); ok {
				return p
			}
		}
	case *Poly:
		if len(s.Verts) >= 3 {
			if p, ok := math.PlaneFromPoints(s.Verts[0].Pos, s.Verts[1].Pos, s.Verts[2].Pos); ok {
				return p
			}
		}
	}
	return math.Plane{Normal: math.Vec3{X: 1}}
}

// NewFace builds a face from a convex polygon wound clockwise as
// seen from its front. It returns false for degenerate polygons.
func NewFace(verts []Vertex) (*Face, bool) {
	if len(verts) < 3 {
		return nil, false
	}
	plane, ok := math.PlaneFromPoints(verts[0].Pos, verts[1].Pos, verts[2].Pos)
	if !ok {
		return nil, false
	}
	f := &Face{
		Plane:   plane,
		Bounds:  math.EmptyBounds(),
		Verts:   verts,
		Indexes: make([]uint32, 0, 3*(len(verts)-2)),
	}
	for i := range verts {
		f.Verts[i].Normal = plane.Normal
		f.Bounds = f.Bounds.AddPoint(verts[i].Pos)
	}
	for i := uint32(1); i+1 < uint32(len(verts)); i++ {
		f.Indexes = append(f.Indexes, 0, i, i+1)
	}
	return f, true
}
