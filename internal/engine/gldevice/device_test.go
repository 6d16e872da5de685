package gldevice

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/fog"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, int32(24), vertexStride)
}

func TestEyeClipPlaneMatchesWorldDistance(t *testing.T) {
	or := view.Orientation{
		Origin: math.Vec3{X: 100, Y: -40, Z: 64},
		Axis:   math.AnglesToAxis(-20, 135, 10),
	}
	plane := math.Plane{Normal: math.Vec3{X: 0.6, Y: 0, Z: 0.8}, Dist: 32}
	eyePlane := EyeClipPlane(or, plane)
	toEye := math.ViewMatrix(or.Origin, or.Axis)

	points := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 256, Y: 17, Z: -90},
		{X: -64, Y: 300, Z: 128},
	}
	for _, p := range points {
		e := toEye.TransformPoint(p.Array())
		got := e[0]*eyePlane[0] + e[1]*eyePlane[1] + e[2]*eyePlane[2] + eyePlane[3]
		assert.InDelta(t, plane.Distance(p), got, 1e-3, "point %v", p)
	}
}

func TestCullFace(t *testing.T) {
	tests := []struct {
		cull     asset.CullType
		mirror   bool
		wantFace uint32
		wantOK   bool
	}{
		{asset.CullFront, false, gl.BACK, true},
		{asset.CullBack, false, gl.FRONT, true},
		{asset.CullFront, true, gl.FRONT, true},
		{asset.CullBack, true, gl.BACK, true},
		{asset.CullNone, false, 0, false},
		{asset.CullNone, true, 0, false},
	}
	for _, tt := range tests {
		face, ok := cullFace(tt.cull, tt.mirror)
		assert.Equal(t, tt.wantOK, ok, "cull %d mirror %t", tt.cull, tt.mirror)
		assert.Equal(t, tt.wantFace, face, "cull %d mirror %t", tt.cull, tt.mirror)
	}
}

func TestFogUniforms(t *testing.T) {
	tests := []struct {
		name string
		p    fog.Params
		want int32
	}{
		{"unregistered", fog.Params{Mode: fog.Linear, Start: 10, End: 100}, fogOff},
		{"linear", fog.Params{Registered: true, Mode: fog.Linear, Start: 10, End: 100}, fogLinear},
		{"linear empty range", fog.Params{Registered: true, Mode: fog.Linear, Start: 100, End: 100}, fogOff},
		{"exp", fog.Params{Registered: true, Mode: fog.Exp, Density: 0.002}, fogExp},
		{"exp no density", fog.Params{Registered: true, Mode: fog.Exp}, fogOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := fogUniforms(tt.p)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLightUniformsFill(t *testing.T) {
	lights := make([]scene.DLight, MaxLights+3)
	for i := range lights {
		lights[i] = scene.DLight{
			Transformed: math.Vec3{X: float32(i)},
			Radius:      100,
			Color:       math.Vec3{X: 1, Y: 0.5},
			Intensity:   2,
		}
	}
	lights[1].Flags = scene.Directed
	lights[2].Intensity = 0

	var l lightUniforms
	l.fill(lights)

	assert.Equal(t, int32(MaxLights), l.n)
	assert.Equal(t, [3]float32{3, 0, 0}, l.pos[3])
	assert.Equal(t, [3]float32{2, 1, 0}, l.color[0])
	assert.Equal(t, [3]float32{1, 0.5, 0}, l.color[2])
	assert.Equal(t, float32(-1), l.radius[1])
	assert.Equal(t, float32(100), l.radius[0])
}

func TestPackVertices(t *testing.T) {
	src := []surface.Vertex{
		{Pos: math.Vec3{X: 1, Y: 2, Z: 3}, ST: [2]float32{0.5, 1}, Color: [4]uint8{1, 2, 3, 4}},
		{Pos: math.Vec3{X: 4, Y: 5, Z: 6}},
	}
	got := packVertices(nil, src)
	assert.Equal(t, []vertex{
		{Pos: [3]float32{1, 2, 3}, ST: [2]float32{0.5, 1}, Color: [4]uint8{1, 2, 3, 4}},
		{Pos: [3]float32{4, 5, 6}},
	}, got)
}

func TestBlended(t *testing.T) {
	assert.False(t, blended(&asset.Shader{Sort: asset.SortOpaque, Color: [4]float32{1, 1, 1, 1}}))
	assert.True(t, blended(&asset.Shader{Sort: asset.SortOpaque, Color: [4]float32{1, 1, 1, 0.5}}))
	assert.True(t, blended(&asset.Shader{Sort: asset.SortBlend0}))
	assert.False(t, blended(&asset.Shader{Sort: asset.SortSeeThrough}))
}
