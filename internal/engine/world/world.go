// Package world holds a loaded map in the form the renderer front end
// walks: leaves with bounds, the surfaces they reference, fog volumes,
// inline brush models and the sun.
package world

import (
	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Leaf is a convex region of the map and the surfaces visible in it.
type Leaf struct {
	Bounds   math.Bounds
	Surfaces []int
}

// Surface is one drawable map surface.
type Surface struct {
	Data     surface.Surface
	Shader   *asset.Shader
	FogIndex int

	viewCount int
}

// FogVolume is a box of fog. The volume marked global covers the whole map.
type FogVolume struct {
	Bounds         math.Bounds
	Color          [3]float32
	DepthForOpaque float32
}

// Sun is the directional light drawn after the world.
type Sun struct {
	Direction math.Vec3
	Shader    *asset.Shader
}

// BrushModel is an inline model: doors, platforms, movers. Model zero is
// the static world.
type BrushModel struct {
	Bounds   math.Bounds
	Surfaces []int
}

// World is a loaded map.
type World struct {
	Name string

	Leaves   []Leaf
	Surfaces []Surface
	Models   []BrushModel

	// Fogs is indexed by fog number; entry zero is unused.
	Fogs      []FogVolume
	GlobalFog int // zero when the map has none

	Sun    *Sun
	Bounds math.Bounds
}

// FogForBounds returns the first local fog volume overlapping b, or zero.
// The global fog volume is handled separately and never returned.
func (w *World) FogForBounds(b math.Bounds) int {
	for i := 1; i < len(w.Fogs); i++ {
		if i == w.GlobalFog {
			continue
		}
		if w.Fogs[i].Bounds.Overlaps(b) {
			return i
		}
	}
	return 0
}

// FogForSphere is FogForBounds for a sphere.
func (w *World) FogForSphere(center math.Vec3, radius float32) int {
	r := math.Vec3{X: radius, Y: radius, Z: radius}
	return w.FogForBounds(math.Bounds{Min: center.Sub(r), Max: center.Add(r)})
}

// GlobalFogVolume returns the global fog volume, if the map has one.
func (w *World) GlobalFogVolume() (FogVolume, bool) {
	if w.GlobalFog <= 0 || w.GlobalFog >= len(w.Fogs) {
		return FogVolume{}, false
	}
	return w.Fogs[w.GlobalFog], true
}

// Mark records that surface i was added in view viewCount. It returns
// false when the surface was already added in that view, so surfaces
// shared by several leaves are drawn once.
func (w *World) Mark(i, viewCount int) bool {
	s := &w.Surfaces[i]
	if s.viewCount == viewCount {
		return false
	}
	s.viewCount = viewCount
	return true
}

// Model returns inline model i.
func (w *World) Model(i int) (*BrushModel, bool) {
	if i < 0 || i >= len(w.Models) {
		return nil, false
	}
	return &w.Models[i], true
}
