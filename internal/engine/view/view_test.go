package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

func testView(opts Options) *View {
	v := New(scene.RefDef{
		Width: 640, Height: 480,
		FovX: 90, FovY: 90,
		ViewAxis: math.AxisIdentity(),
	}, 480, opts)
	v.RotateForViewer()
	v.ZFar = 1000
	v.SetupProjection()
	return &v
}

func box(minX, minY, minZ, maxX, maxY, maxZ float32) math.Bounds {
	return math.Bounds{
		Min: math.Vec3{X: minX, Y: minY, Z: minZ},
		Max: math.Vec3{X: maxX, Y: maxY, Z: maxZ},
	}
}

func TestCullBox(t *testing.T) {
	v := testView(DefaultOptions())
	require.Equal(t, 5, v.NumPlanes)

	tests := []struct {
		name string
		b    math.Bounds
		want Cull
	}{
		{"in front", box(100, -5, -5, 110, 5, 5), CullIn},
		{"behind", box(-110, -5, -5, -100, 5, 5), CullOut},
		{"left of view", box(10, 200, -5, 20, 210, 5), CullOut},
		{"straddles sides", box(100, -200, -5, 110, 200, 5), CullClip},
		{"beyond far plane", box(1500, -5, -5, 1600, 5, 5), CullOut},
		{"crosses far plane", box(900, -5, -5, 1100, 5, 5), CullClip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.CullBox(tt.b))
		})
	}
}

func TestCullPointAndRadius(t *testing.T) {
	v := testView(DefaultOptions())

	tests := []struct {
		name   string
		center math.Vec3
		radius float32
		want   Cull
	}{
		{"inside", math.Vec3{X: 100}, 10, CullIn},
		{"behind", math.Vec3{X: -100}, 10, CullOut},
		{"touching side", math.Vec3{X: 100, Y: 95}, 10, CullClip},
		{"around viewer", math.Vec3{}, 10, CullClip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.CullPointAndRadius(tt.center, tt.radius))
		})
	}
}

func TestNoCullClassifiesEverythingAsClipped(t *testing.T) {
	opts := DefaultOptions()
	opts.NoCull = true
	v := testView(opts)

	assert.Equal(t, CullClip, v.CullBox(box(-110, -5, -5, -100, 5, 5)))
	assert.Equal(t, CullClip, v.CullPointAndRadius(math.Vec3{X: -100}, 1))
}

func TestCullLocalBox(t *testing.T) {
	v := testView(DefaultOptions())

	// an entity behind the viewer, turned around, with a box in front of it
	e := scene.Entity{
		Type:   scene.EntityModel,
		Origin: math.Vec3{X: -50},
		Axis:   math.AnglesToAxis(0, 180, 0),
	}
	or := v.RotateForEntity(&e)

	assert.Equal(t, CullOut, v.CullLocalBox(&or, box(10, -5, -5, 20, 5, 5)))
	assert.Equal(t, CullIn, v.CullLocalBox(&or, box(-200, -5, -5, -150, 5, 5)))
}

func TestSetupFrustumWithoutFarClip(t *testing.T) {
	v := New(scene.RefDef{Width: 10, Height: 10, FovX: 90, FovY: 90, ViewAxis: math.AxisIdentity()}, 10, DefaultOptions())
	v.SetupFrustum()
	assert.Equal(t, 4, v.NumPlanes)
	assert.Equal(t, CullIn, v.CullBox(box(1e5, -1, -1, 1e5+1, 1, 1)))
}

func TestSetFarClip(t *testing.T) {
	world := box(-4096, -4096, -4096, 4096, 4096, 4096)

	t.Run("farthest visible corner", func(t *testing.T) {
		v := testView(DefaultOptions())
		v.ResetVisBounds()
		v.AddVisBounds(box(-100, -100, -100, 100, 100, 100))
		v.SetFarClip(0, world)
		assert.InDelta(t, 173.205, v.ZFar, 1e-2)
	})

	t.Run("global fog holds it in", func(t *testing.T) {
		v := testView(DefaultOptions())
		v.ResetVisBounds()
		v.AddVisBounds(box(-100, -100, -100, 100, 100, 100))
		v.SetFarClip(50, world)
		assert.Equal(t, float32(50), v.ZFar)
	})

	t.Run("override wins", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ZFar = 300
		v := testView(opts)
		v.AddVisBounds(box(-100, -100, -100, 100, 100, 100))
		v.SetFarClip(50, world)
		assert.Equal(t, float32(300), v.ZFar)
	})

	t.Run("no world model", func(t *testing.T) {
		v := testView(DefaultOptions())
		v.Flags = scene.NoWorldModel
		v.SetFarClip(50, world)
		assert.Equal(t, float32(NoWorldFarClip), v.ZFar)
	})

	t.Run("nothing visible falls back to world", func(t *testing.T) {
		v := testView(DefaultOptions())
		v.ResetVisBounds()
		v.SetFarClip(0, world)
		assert.InDelta(t, 7094.48, v.ZFar, 1)
	})

	t.Run("linear fog clamps", func(t *testing.T) {
		v := testView(DefaultOptions())
		v.ClampFarClip(200)
		assert.Equal(t, float32(200), v.ZFar)
		v.ClampFarClip(5000)
		assert.Equal(t, float32(200), v.ZFar)
	})
}

func TestNewConvertsViewport(t *testing.T) {
	v := New(scene.RefDef{X: 5, Y: 10, Width: 200, Height: 100, Time: 1500}, 480, DefaultOptions())
	assert.Equal(t, 5, v.ViewportX)
	assert.Equal(t, 370, v.ViewportY)
	assert.InDelta(t, 1.5, v.FloatTime, 1e-6)
}

func TestRotateForEntity(t *testing.T) {
	v := testView(DefaultOptions())

	model := scene.Entity{Type: scene.EntityModel, Origin: math.Vec3{X: 10}, Axis: math.AxisIdentity()}
	or := v.RotateForEntity(&model)
	assert.Equal(t, math.Vec3{X: -10}, or.ViewOrigin)
	assert.Equal(t, math.Vec3{X: 12, Y: 1}, or.LocalPointToWorld(math.Vec3{X: 2, Y: 1}))
	assert.Equal(t, math.Vec3{X: 2, Y: 1}, or.WorldToLocal(math.Vec3{X: 12, Y: 1}))

	// the model matrix puts the local origin 10 units down -Z in eye space
	eye := or.ModelMatrix.TransformVec3(math.Vec3{})
	assert.InDelta(t, -10, eye.Z, 1e-5)

	sprite := scene.Entity{Type: scene.EntitySprite, Origin: math.Vec3{X: 10}}
	assert.Equal(t, v.World, v.RotateForEntity(&sprite))
}

func TestTransformClipToWindow(t *testing.T) {
	v := testView(DefaultOptions())

	_, clip := TransformModelToClip(math.Vec3{X: 100}, v.World.ModelMatrix, v.ProjectionMatrix)
	_, window := v.TransformClipToWindow(clip)
	assert.Equal(t, float32(320), window[0])
	assert.Equal(t, float32(240), window[1])
	assert.Greater(t, window[2], float32(-1))
	assert.Less(t, window[2], float32(1))
}
