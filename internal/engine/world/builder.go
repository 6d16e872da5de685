package world

import (
	"fmt"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Builder assembles a World from already decoded geometry.
type Builder struct {
	w *World
}

// NewBuilder starts an empty world. Model zero, the static world, is
// created with no surfaces.
func NewBuilder(name string) *Builder {
	return &Builder{w: &World{
		Name:   name,
		Fogs:   make([]FogVolume, 1),
		Models: make([]BrushModel, 1),
		Bounds: math.EmptyBounds(),
	}}
}

// AddSurface adds a drawable and returns its surface index.
func (b *Builder) AddSurface(s surface.Surface, shader *asset.Shader) int {
	b.w.Surfaces = append(b.w.Surfaces, Surface{Data: s, Shader: shader, viewCount: -1})
	return len(b.w.Surfaces) - 1
}

// AddLeaf adds a leaf referencing existing surfaces. Its bounds grow to
// cover them.
func (b *Builder) AddLeaf(bounds math.Bounds, surfaces ...int) error {
	for _, i := range surfaces {
		if i < 0 || i >= len(b.w.Surfaces) {
			return fmt.Errorf("adding leaf: surface %d out of range", i)
		}
		if sb, ok := surface.BoundsOf(b.w.Surfaces[i].Data); ok {
			bounds = bounds.Union(sb)
		}
	}
	b.w.Leaves = append(b.w.Leaves, Leaf{Bounds: bounds, Surfaces: surfaces})
	b.w.Models[0].Surfaces = append(b.w.Models[0].Surfaces, surfaces...)
	b.w.Bounds = b.w.Bounds.Union(bounds)
	return nil
}

// AddModel adds an inline brush model whose surfaces are in model space
// and returns its index.
func (b *Builder) AddModel(surfaces ...int) (int, error) {
	bounds := math.EmptyBounds()
	for _, i := range surfaces {
		if i < 0 || i >= len(b.w.Surfaces) {
			return 0, fmt.Errorf("adding model: surface %d out of range", i)
		}
		if sb, ok := surface.BoundsOf(b.w.Surfaces[i].Data); ok {
			bounds = bounds.Union(sb)
		}
	}
	b.w.Models = append(b.w.Models, BrushModel{Bounds: bounds, Surfaces: surfaces})
	return len(b.w.Models) - 1, nil
}

// AddFog adds a fog volume and returns its fog number.
func (b *Builder) AddFog(f FogVolume) int {
	if len(b.w.Fogs) >= surface.MaxFogs {
		return 0
	}
	b.w.Fogs = append(b.w.Fogs, f)
	return len(b.w.Fogs) - 1
}

// SetGlobalFog marks fog number i as the map-wide fog.
func (b *Builder) SetGlobalFog(i int) {
	b.w.GlobalFog = i
}

// SetSun sets the sun direction and shader.
func (b *Builder) SetSun(dir math.Vec3, shader *asset.Shader) {
	b.w.Sun = &Sun{Direction: dir.Normalize(), Shader: shader}
}

// Build assigns fog volumes to the world surfaces and returns the world.
// Inline model surfaces keep fog zero; their fog follows the entity.
func (b *Builder) Build() *World {
	w := b.w
	inWorld := make(map[int]bool, len(w.Models[0].Surfaces))
	for _, i := range w.Models[0].Surfaces {
		inWorld[i] = true
	}
	for i := range w.Surfaces {
		if !inWorld[i] {
			continue
		}
		if sb, ok := surface.BoundsOf(w.Surfaces[i].Data); ok {
			w.Surfaces[i].FogIndex = w.FogForBounds(sb)
		}
	}
	return w
}
