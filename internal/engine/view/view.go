// Package view holds the per-pass camera state of the renderer: frustum,
// projection, far clip and the orientation transforms, plus the box and
// sphere classification every culling decision goes through.
package view

import (
	"github.com/Faultbox/ironsight/internal/engine/fog"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

// NoWorldFarClip is the far clip of scenes rendered without a world.
const NoWorldFarClip = 2048

// Orientation places a model or the viewer in the world.
type Orientation struct {
	Origin math.Vec3
	Axis   math.Axis

	// ViewOrigin is the viewer position in this orientation's local space.
	ViewOrigin math.Vec3

	// ModelMatrix is the local-to-eye matrix.
	ModelMatrix math.Mat4
}

// View is one camera pass. Portal passes copy their parent and change the
// camera; the parent is restored when the nested pass returns.
type View struct {
	Or        Orientation // the camera
	World     Orientation // world space as seen by the camera
	PVSOrigin math.Vec3

	IsPortal    bool
	IsMirror    bool
	PortalPlane math.Plane // user clip plane of portal passes

	// Depth counts enclosing portal passes.
	Depth int

	FrameSceneNum int
	FrameCount    int

	ViewportX      int
	ViewportY      int
	ViewportWidth  int
	ViewportHeight int
	FovX, FovY     float32

	ProjectionMatrix math.Mat4
	Frustum          [5]math.Plane
	NumPlanes        int

	// VisBounds accumulates visible world geometry for the far clip.
	VisBounds math.Bounds
	ZNear     float32
	ZFar      float32

	Flags     scene.RDFlags
	Time      int
	FloatTime float32

	// DLights are this pass's visible lights, renumbered from zero.
	DLights    []scene.DLight
	DLightBits uint32

	Fog     fog.Params
	Options Options
}

// New builds the primary view for a scene. The scene's top-left viewport is
// converted to the bottom-left origin the device uses.
func New(rd scene.RefDef, screenHeight int, opts Options) View {
	return View{
		Or: Orientation{
			Origin: rd.ViewOrigin,
			Axis:   rd.ViewAxis,
		},
		PVSOrigin:      rd.ViewOrigin,
		ViewportX:      rd.X,
		ViewportY:      screenHeight - (rd.Y + rd.Height),
		ViewportWidth:  rd.Width,
		ViewportHeight: rd.Height,
		FovX:           rd.FovX,
		FovY:           rd.FovY,
		Flags:          rd.Flags,
		Time:           rd.Time,
		FloatTime:      float32(rd.Time) / 1000,
		VisBounds:      math.EmptyBounds(),
		ZNear:          opts.ZNear,
		Options:        opts,
	}
}

// AddVisBounds grows the visible bounds by b.
func (v *View) AddVisBounds(b math.Bounds) {
	v.VisBounds = v.VisBounds.Union(b)
}

// ResetVisBounds clears the visible bounds before world traversal.
func (v *View) ResetVisBounds() {
	v.VisBounds = math.EmptyBounds()
}
