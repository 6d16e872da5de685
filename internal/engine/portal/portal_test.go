package portal

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

func testView(origin math.Vec3) *view.View {
	v := &view.View{FovX: 90, FovY: 90, ZNear: 4, ZFar: 1000, Options: view.DefaultOptions()}
	v.Or.Origin = origin
	v.Or.Axis = math.AxisIdentity()
	v.RotateForViewer()
	v.SetupProjection()
	return v
}

// wall at x, facing -x.
func wall(x float32) *surface.Face {
	f, ok := surface.NewFace([]surface.Vertex{
		{Pos: math.Vec3{X: x, Y: -10, Z: -10}},
		{Pos: math.Vec3{X: x, Y: 10, Z: -10}},
		{Pos: math.Vec3{X: x, Y: 10, Z: 10}},
		{Pos: math.Vec3{X: x, Y: -10, Z: 10}},
	})
	if !ok {
		panic("degenerate wall")
	}
	return f
}

func marker(origin, oldOrigin math.Vec3) scene.Entity {
	return scene.Entity{
		Type:      scene.EntityPortalSurface,
		Origin:    origin,
		OldOrigin: oldOrigin,
		Axis:      math.AxisIdentity(),
	}
}

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func TestMirrorReflectsViewer(t *testing.T) {
	v := testView(math.Vec3{})
	mirrorPlane := &surface.Face{Plane: math.Plane{Normal: math.Vec3{X: 1}, Dist: 10}}
	at := math.Vec3{X: 10}
	ents := []scene.Entity{marker(at, at)}

	p, ok := Orientations(v, Surface{Surf: mirrorPlane}, ents)
	require.True(t, ok)
	assert.True(t, p.Mirror)

	assertVec(t, math.Vec3{X: 20}, MirrorPoint(v.Or.Origin, &p.Surface, &p.Camera))
	assertVec(t, math.Vec3{X: -1}, MirrorVector(v.Or.Axis[0], &p.Surface, &p.Camera))
}

func TestPortalCameraIgnoresViewer(t *testing.T) {
	ents := []scene.Entity{marker(math.Vec3{X: 100}, math.Vec3{X: 500, Y: 500})}
	s := Surface{Surf: wall(100)}

	var cams []Orientation
	for _, origin := range []math.Vec3{{}, {X: 50, Y: -20, Z: 8}} {
		p, ok := Orientations(testView(origin), s, ents)
		require.True(t, ok)
		assert.False(t, p.Mirror)
		cams = append(cams, p.Camera)
	}

	assert.Equal(t, cams[0], cams[1])
	assert.Equal(t, math.Vec3{X: 500, Y: 500}, cams[0].Origin)
	assert.Equal(t, math.Axis{{X: -1}, {Y: -1}, {Z: 1}}, cams[0].Axis)
}

func TestPortalFixedRoll(t *testing.T) {
	e := marker(math.Vec3{X: 100}, math.Vec3{X: 500})
	e.SkinNum = 90
	p, ok := Orientations(testView(math.Vec3{}), Surface{Surf: wall(100)}, []scene.Entity{e})
	require.True(t, ok)

	up := p.Camera.Axis[1]
	assert.InDelta(t, 0, up.Y, 1e-4)
	assert.InDelta(t, 1, math32.Abs(up.Z), 1e-4)
	assertVec(t, p.Camera.Axis[0].Cross(p.Camera.Axis[1]), p.Camera.Axis[2])
}

func TestMarkerMustLieOnPlane(t *testing.T) {
	far := math.Vec3{X: 200}
	_, ok := Orientations(testView(math.Vec3{}), Surface{Surf: wall(100)}, []scene.Entity{marker(far, far)})
	assert.False(t, ok)
}

func TestMirrorViewBySurfaceRendersOnce(t *testing.T) {
	c := NewComposer()
	parent := testView(math.Vec3{})
	before := *parent
	at := math.Vec3{X: 100}
	ents := []scene.Entity{marker(at, at)}
	s := Surface{Surf: wall(100)}

	var views []view.View
	render := func(v *view.View) error {
		views = append(views, *v)
		assert.Equal(t, 1, c.Depth())

		// a nested portal is refused even with the flag cleared
		inner := *v
		inner.IsPortal = false
		ok, err := c.MirrorViewBySurface(&inner, s, ents, func(*view.View) error {
			t.Fatal("nested portal rendered")
			return nil
		})
		assert.NoError(t, err)
		assert.False(t, ok)
		return nil
	}

	ok, err := c.MirrorViewBySurface(parent, s, ents, render)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, views, 1)

	nested := views[0]
	assert.True(t, nested.IsPortal)
	assert.True(t, nested.IsMirror)
	assert.Equal(t, 1, nested.Depth)
	assertVec(t, math.Vec3{X: 200}, nested.Or.Origin)
	assertVec(t, math.Vec3{X: -1}, nested.Or.Axis[0])
	assertVec(t, math.Vec3{X: -1}, nested.PortalPlane.Normal)
	assert.InDelta(t, -100, nested.PortalPlane.Dist, 1e-4)

	assert.Equal(t, before, *parent)
	assert.Zero(t, c.Depth())
	assert.Equal(t, Stats{Rendered: 1, Recursive: 1}, c.Stats())
}

func TestMirrorViewBySurfaceRejects(t *testing.T) {
	at := math.Vec3{X: 100}
	ents := []scene.Entity{marker(at, at)}
	never := func(*view.View) error {
		t.Fatal("portal view rendered")
		return nil
	}

	t.Run("inside portal", func(t *testing.T) {
		v := testView(math.Vec3{})
		v.IsPortal = true
		ok, _ := NewComposer().MirrorViewBySurface(v, Surface{Surf: wall(100)}, ents, never)
		assert.False(t, ok)
	})
	t.Run("portals disabled", func(t *testing.T) {
		v := testView(math.Vec3{})
		v.Options.NoPortals = true
		ok, _ := NewComposer().MirrorViewBySurface(v, Surface{Surf: wall(100)}, ents, never)
		assert.False(t, ok)
	})
	t.Run("behind viewer", func(t *testing.T) {
		c := NewComposer()
		ok, _ := c.MirrorViewBySurface(testView(math.Vec3{}), Surface{Surf: wall(-100)}, ents, never)
		assert.False(t, ok)
		assert.Equal(t, 1, c.Stats().Offscreen)
	})
	t.Run("no marker", func(t *testing.T) {
		c := NewComposer()
		ok, _ := c.MirrorViewBySurface(testView(math.Vec3{}), Surface{Surf: wall(100)}, nil, never)
		assert.False(t, ok)
		assert.Equal(t, 1, c.Stats().NoMarker)
	})
}

func TestPortalRange(t *testing.T) {
	c := NewComposer()
	v := testView(math.Vec3{})
	ents := []scene.Entity{marker(math.Vec3{X: 100}, math.Vec3{X: 500})}

	assert.True(t, c.SurfaceIsOffscreen(v, Surface{Surf: wall(100), Range: 50}, ents))
	assert.False(t, c.SurfaceIsOffscreen(v, Surface{Surf: wall(100), Range: 256}, ents))
	assert.False(t, c.SurfaceIsOffscreen(v, Surface{Surf: wall(100)}, ents))

	// mirrors ignore range
	at := math.Vec3{X: 100}
	assert.False(t, c.SurfaceIsOffscreen(v, Surface{Surf: wall(100), Range: 50}, []scene.Entity{marker(at, at)}))
}

func TestRenderErrorPropagates(t *testing.T) {
	at := math.Vec3{X: 100}
	boom := errors.New("boom")
	c := NewComposer()
	ok, err := c.MirrorViewBySurface(testView(math.Vec3{}), Surface{Surf: wall(100)},
		[]scene.Entity{marker(at, at)}, func(*view.View) error { return boom })
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, c.Depth())
}
