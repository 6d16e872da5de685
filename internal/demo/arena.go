// Package demo builds a small test map and animates a scene in it, so the
// executables have something to render without an asset pipeline.
package demo

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/world"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Arena dimensions.
const (
	HalfSize = 512
	Height   = 256

	mirrorX = HalfSize - 12
)

var (
	white     = [4]uint8{255, 255, 255, 255}
	crateTint = [4]uint8{224, 192, 144, 255}
)

// Scene receives what Populate adds each frame. *renderer.Renderer
// satisfies it.
type Scene interface {
	AddEntity(e scene.Entity) error
	AddLight(l scene.DLight) bool
	AddPoly(p scene.Poly) bool
}

// Arena is the demo map and the assets its scene uses.
type Arena struct {
	Cache *asset.MemoryCache
	World *world.World

	Spawn       math.Vec3
	FlareShader *asset.Shader

	crate    asset.ModelHandle
	platform asset.ModelHandle
	glow     asset.ShaderHandle
	scorch   asset.ShaderHandle
}

// Build creates the arena: a room split into two leaves, a mirror on the
// east wall, a fog pocket in the north-west corner and a sun.
func Build() (*Arena, error) {
	a := &Arena{
		Cache: asset.NewMemoryCache(),
		Spawn: math.Vec3{X: -HalfSize + 128, Z: 64},
	}
	c := a.Cache

	register := func(s asset.Shader) *asset.Shader {
		if s.Color == ([4]float32{}) {
			s.Color = [4]float32{1, 1, 1, 1}
		}
		return c.Shader(c.RegisterShader(s))
	}
	floor := register(asset.Shader{Name: "textures/arena/floor", Image: "textures/arena/floor", Sort: asset.SortOpaque})
	wall := register(asset.Shader{Name: "textures/arena/wall", Image: "textures/arena/wall", Sort: asset.SortOpaque})
	ceiling := register(asset.Shader{Name: "textures/arena/ceiling", Image: "textures/arena/ceiling", Sort: asset.SortOpaque})
	mirror := register(asset.Shader{
		Name:  "textures/arena/mirror",
		Sort:  asset.SortPortal,
		Color: [4]float32{0.8, 0.9, 1, 0.15},
	})
	crate := register(asset.Shader{Name: "models/crate", Image: "models/crate", Sort: asset.SortOpaque, EntityColor: true})
	platform := register(asset.Shader{Name: "models/platform", Image: "textures/arena/wall", Sort: asset.SortOpaque})
	glow := register(asset.Shader{Name: "sprites/glow", Image: "sprites/glow", Sort: asset.SortBlend0, Cull: asset.CullNone})
	scorch := register(asset.Shader{
		Name:          "marks/scorch",
		Image:         "marks/scorch",
		Sort:          asset.SortDecal,
		PolygonOffset: true,
		Color:         [4]float32{0.2, 0.2, 0.2, 0.8},
	})
	sun := register(asset.Shader{Name: "sun", Image: "sprites/glow", Sort: asset.SortBlend1, Cull: asset.CullNone})
	a.FlareShader = register(asset.Shader{Name: "flareShader", Image: "sprites/glow", Sort: asset.SortBlend1, Cull: asset.CullNone})

	b := world.NewBuilder("arena")
	var west, east []int
	add := func(dst *[]int, s *surface.Face, sh *asset.Shader) {
		*dst = append(*dst, b.AddSurface(s, sh))
	}

	const h, half = Height, HalfSize
	up, down := math.Vec3{Z: 1}, math.Vec3{Z: -1}
	for _, side := range []struct {
		dst *[]int
		x   float32
	}{{&west, -half / 2}, {&east, half / 2}} {
		add(side.dst, Quad(math.Vec3{X: side.x}, up, half/2, half), floor)
		add(side.dst, Quad(math.Vec3{X: side.x, Z: h}, down, half/2, half), ceiling)
		add(side.dst, Quad(math.Vec3{X: side.x, Y: half, Z: h / 2}, math.Vec3{Y: -1}, half/2, h/2), wall)
		add(side.dst, Quad(math.Vec3{X: side.x, Y: -half, Z: h / 2}, math.Vec3{Y: 1}, half/2, h/2), wall)
	}
	add(&west, Quad(math.Vec3{X: -half, Z: h / 2}, math.Vec3{X: 1}, half, h/2), wall)
	add(&east, Quad(math.Vec3{X: half, Z: h / 2}, math.Vec3{X: -1}, half, h/2), wall)
	add(&east, Quad(MirrorCenter(), math.Vec3{X: -1}, 96, 64), mirror)

	if err := b.AddLeaf(math.EmptyBounds(), west...); err != nil {
		return nil, fmt.Errorf("building arena: %w", err)
	}
	if err := b.AddLeaf(math.EmptyBounds(), east...); err != nil {
		return nil, fmt.Errorf("building arena: %w", err)
	}

	// a floating slab, drawn as an inline model
	top := b.AddSurface(Quad(math.Vec3{Z: 8}, up, 48, 48), platform)
	bottom := b.AddSurface(Quad(math.Vec3{Z: -8}, down, 48, 48), platform)
	brush, err := b.AddModel(top, bottom)
	if err != nil {
		return nil, fmt.Errorf("building arena: %w", err)
	}

	b.AddFog(world.FogVolume{
		Bounds: math.Bounds{
			Min: math.Vec3{X: -half, Y: half / 2, Z: 0},
			Max: math.Vec3{X: -half / 2, Y: half, Z: h / 2},
		},
		Color:          [3]float32{0.45, 0.4, 0.35},
		DepthForOpaque: 192,
	})
	b.SetSun(math.Vec3{X: 0.3, Y: 0.2, Z: 1}, sun)
	a.World = b.Build()

	box := math.Bounds{Min: math.Vec3{X: -16, Y: -16, Z: -16}, Max: math.Vec3{X: 16, Y: 16, Z: 16}}
	a.crate = c.RegisterModel(&asset.Model{
		Name: "models/crate",
		Type: asset.ModelMesh,
		LODs: []*asset.Mesh{asset.NewBoxMesh("crate", box, crate)},
	})
	a.platform = c.RegisterModel(&asset.Model{Name: "*1", Type: asset.ModelBrush, Brush: brush})
	a.glow = asset.ShaderHandle(glow.Index)
	a.scorch = asset.ShaderHandle(scorch.Index)
	return a, nil
}

// MirrorCenter is the middle of the mirror on the east wall.
func MirrorCenter() math.Vec3 {
	return math.Vec3{X: mirrorX, Z: 112}
}

// Quad returns a rectangle centered on center facing normal, halfW wide
// and halfH tall either side of the center. Its vertices wind clockwise
// seen from the front.
func Quad(center, normal math.Vec3, halfW, halfH float32) *surface.Face {
	n := normal.Normalize()
	u := math.Vec3{Z: 1}
	if math32.Abs(n.Z) > 0.9 {
		u = math.Vec3{X: 1}
	}
	r := u.Cross(n)

	corners := [4]math.Vec3{
		center.MA(-halfW, r).MA(halfH, u),
		center.MA(halfW, r).MA(halfH, u),
		center.MA(halfW, r).MA(-halfH, u),
		center.MA(-halfW, r).MA(-halfH, u),
	}
	st := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	verts := make([]surface.Vertex, 4)
	for i, p := range corners {
		verts[i] = surface.Vertex{
			Pos:   p,
			ST:    [2]float32{st[i][0] * halfW / 64, st[i][1] * halfH / 64},
			Color: white,
		}
	}
	f, ok := surface.NewFace(verts)
	if !ok {
		panic("demo: degenerate quad")
	}
	return f
}

// Populate adds the arena's entities, lights and marks at timeMs.
func (a *Arena) Populate(s Scene, timeMs int) error {
	t := float32(timeMs) / 1000

	mirror := MirrorCenter()
	entities := []scene.Entity{
		// marker of the mirror; a mirror's camera is the marker itself
		{Type: scene.EntityPortalSurface, Origin: mirror, OldOrigin: mirror, Axis: math.AxisIdentity()},
		a.crateAt(math.Vec3{X: 64, Y: -128, Z: 16}, 0),
		a.crateAt(math.Vec3{X: 64, Y: -96, Z: 16}, 30),
		a.crateAt(math.Vec3{X: 200, Y: 160, Z: 48 + 16*math32.Sin(t*2)}, math32.Mod(t*45, 360)),
		{
			Type:   scene.EntityModel,
			Model:  a.platform,
			Origin: math.Vec3{X: -128, Y: 192, Z: 96 + 32*math32.Sin(t)},
			Axis:   math.AxisIdentity(),
		},
		{
			Type:         scene.EntitySprite,
			CustomShader: a.glow,
			Origin:       math.Vec3{X: 0, Y: 0, Z: 200},
			Radius:       12,
			Rotation:     math32.Mod(t*90, 360),
			ShaderRGBA:   [4]uint8{255, 220, 160, 255},
		},
	}
	for _, e := range entities {
		if err := s.AddEntity(e); err != nil {
			return fmt.Errorf("populating arena: %w", err)
		}
	}

	sin, cos := math32.Sincos(t)
	s.AddLight(scene.DLight{
		Origin:    math.Vec3{X: 256 * cos, Y: 256 * sin, Z: 48},
		Radius:    200,
		Intensity: 1,
		Color:     math.Vec3{X: 1, Y: 0.6, Z: 0.3},
	})
	s.AddLight(scene.DLight{
		Origin:    math.Vec3{X: -256 * cos, Y: -256 * sin, Z: 96},
		Radius:    160,
		Intensity: 1,
		Color:     math.Vec3{X: 0.3, Y: 0.5, Z: 1},
	})

	const r = 24
	c := math.Vec3{X: -200, Y: -64, Z: 0.5}
	s.AddPoly(scene.Poly{
		Shader: a.scorch,
		Verts: []scene.PolyVert{
			{Pos: c.Add(math.Vec3{X: -r, Y: r}), ST: [2]float32{0, 0}, Color: white},
			{Pos: c.Add(math.Vec3{X: r, Y: r}), ST: [2]float32{1, 0}, Color: white},
			{Pos: c.Add(math.Vec3{X: r, Y: -r}), ST: [2]float32{1, 1}, Color: white},
			{Pos: c.Add(math.Vec3{X: -r, Y: -r}), ST: [2]float32{0, 1}, Color: white},
		},
	})
	return nil
}

func (a *Arena) crateAt(origin math.Vec3, yaw float32) scene.Entity {
	return scene.Entity{
		Type:       scene.EntityModel,
		Model:      a.crate,
		Origin:     origin,
		Axis:       math.AnglesToAxis(0, yaw, 0),
		ShaderRGBA: crateTint,
	}
}
