package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ironsight/internal/engine/backend"
	"github.com/Faultbox/ironsight/internal/engine/renderer"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

func TestQuadFacesNormal(t *testing.T) {
	normals := []math.Vec3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
	for _, n := range normals {
		f := Quad(math.Vec3{X: 10, Y: 20, Z: 30}, n, 16, 8)
		assert.InDelta(t, 1, f.Plane.Normal.Dot(n), 1e-5, "normal %v", n)
		assert.InDelta(t, 0, f.Plane.Distance(math.Vec3{X: 10, Y: 20, Z: 30}), 1e-3)
		assert.Len(t, f.Indexes, 6)
	}
}

func TestBuild(t *testing.T) {
	a, err := Build()
	require.NoError(t, err)

	assert.Len(t, a.World.Leaves, 2)
	assert.Len(t, a.World.Models, 2, "world plus the platform")
	assert.NotNil(t, a.World.Sun)
	assert.False(t, a.World.Bounds.IsEmpty())
	assert.InDelta(t, HalfSize, a.World.Bounds.Max.X, 1e-3)
	assert.NotNil(t, a.FlareShader)

	_, ok := a.Cache.FindShader("textures/arena/mirror")
	assert.True(t, ok)
}

type recordingScene struct {
	entities []scene.Entity
	lights   []scene.DLight
	polys    []scene.Poly
}

func (s *recordingScene) AddEntity(e scene.Entity) error {
	s.entities = append(s.entities, e)
	return nil
}

func (s *recordingScene) AddLight(l scene.DLight) bool {
	s.lights = append(s.lights, l)
	return true
}

func (s *recordingScene) AddPoly(p scene.Poly) bool {
	s.polys = append(s.polys, p)
	return true
}

func TestPopulateAnimates(t *testing.T) {
	a, err := Build()
	require.NoError(t, err)

	var s0, s1 recordingScene
	require.NoError(t, a.Populate(&s0, 0))
	require.NoError(t, a.Populate(&s1, 500))

	require.Equal(t, len(s0.entities), len(s1.entities))
	assert.Len(t, s0.lights, 2)
	assert.Len(t, s0.polys, 1)
	assert.Equal(t, scene.EntityPortalSurface, s0.entities[0].Type)
	assert.Equal(t, s0.entities[0].Origin, s0.entities[0].OldOrigin)
	assert.NotEqual(t, s0.lights[0].Origin, s1.lights[0].Origin)
}

func TestRenderFromSpawn(t *testing.T) {
	a, err := Build()
	require.NoError(t, err)

	cfg := renderer.DefaultConfig()
	cfg.Width, cfg.Height = 640, 480
	dev := backend.NewTraceDevice()
	r := renderer.New(cfg, a.Cache, dev)
	r.SetFlareShader(a.FlareShader)
	r.LoadWorld(a.World)

	for frame := range 3 {
		require.NoError(t, r.BeginFrame())
		require.NoError(t, a.Populate(r, frame*16))
		require.NoError(t, r.RenderScene(scene.RefDef{
			Width: 640, Height: 480,
			FovX: 90, FovY: 73.74,
			ViewOrigin: a.Spawn,
			ViewAxis:   math.AxisIdentity(),
			Time:       frame * 16,
		}))
		require.NoError(t, r.EndFrame())
	}

	st := r.Stats()
	assert.Equal(t, 1, st.PortalViews, "the mirror is in view")
	assert.Positive(t, st.DrawSurfs)
	assert.NotEmpty(t, dev.Draws())
	assert.Zero(t, st.DrawSurfsDropped)
}
