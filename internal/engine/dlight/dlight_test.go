package dlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

func testView() *view.View {
	v := &view.View{FovX: 90, FovY: 90}
	v.Or.Axis = math.AxisIdentity()
	v.SetupFrustum()
	return v
}

func TestCullCompactsVisible(t *testing.T) {
	v := testView()
	lights := []scene.DLight{
		{Origin: math.Vec3{X: -500}, Radius: 10},                        // behind
		{Origin: math.Vec3{X: 100}, Radius: 10},                         // ahead
		{Origin: math.Vec3{X: -500}, Radius: 10, Flags: scene.Directed}, // directed
	}
	Cull(v, lights)

	require.Len(t, v.DLights, 2)
	assert.Equal(t, float32(100), v.DLights[0].Origin.X)
	assert.Equal(t, scene.Directed, v.DLights[1].Flags)
	assert.Equal(t, uint32(0b11), v.DLightBits)
}

func TestCullNoneVisible(t *testing.T) {
	v := testView()
	Cull(v, []scene.DLight{{Origin: math.Vec3{X: -500}, Radius: 10}})
	assert.Empty(t, v.DLights)
	assert.Zero(t, v.DLightBits)
}

func TestTransform(t *testing.T) {
	or := &view.Orientation{Origin: math.Vec3{X: 10}, Axis: math.AxisIdentity()}
	lights := []scene.DLight{{Origin: math.Vec3{X: 15, Y: 2}}}
	Transform(lights, or)
	assert.Equal(t, math.Vec3{X: 5, Y: 2}, lights[0].Transformed)
}

func TestSurfaceFacePlaneDistance(t *testing.T) {
	f := &surface.Face{
		Plane:  math.Plane{Normal: math.Vec3{Z: 1}},
		Bounds: math.Bounds{Min: math.Vec3{X: -100, Y: -100}, Max: math.Vec3{X: 100, Y: 100}},
	}
	lights := []scene.DLight{
		{Transformed: math.Vec3{Z: 50}, Radius: 100},  // touches
		{Transformed: math.Vec3{Z: 150}, Radius: 100}, // too high
		{Transformed: math.Vec3{X: 300}, Radius: 100}, // on plane, beside the face
	}
	assert.Equal(t, uint32(0b001), Surface(f, lights, 0b111))
	assert.Equal(t, uint32(0), Surface(f, lights, 0b110))
}

func TestSurfaceOtherKindsGetNoLights(t *testing.T) {
	lights := []scene.DLight{{Radius: 100}}
	assert.Zero(t, Surface(&surface.Poly{}, lights, 1))
}

func TestBox(t *testing.T) {
	b := math.Bounds{Min: math.Vec3{X: -10, Y: -10, Z: -10}, Max: math.Vec3{X: 10, Y: 10, Z: 10}}
	lights := []scene.DLight{
		{Transformed: math.Vec3{X: 25}, Radius: 20},
		{Transformed: math.Vec3{X: 40}, Radius: 20},
	}
	assert.Equal(t, uint32(0b01), Box(b, lights))
}

func TestSphere(t *testing.T) {
	lights := []scene.DLight{
		{Origin: math.Vec3{X: 30}, Radius: 20},
		{Origin: math.Vec3{X: 31}, Radius: 20},
	}
	assert.Equal(t, uint32(0b01), Sphere(math.Vec3{}, 10, lights))
}
