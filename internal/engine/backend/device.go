// Package backend replays a sealed command buffer against a Device.
//
// The front end never touches the device; everything it decided travels
// through the command records and the frame they reference.
package backend

import (
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Device is the GPU capability the executor drives.
type Device interface {
	// BeginView sets viewport, projection and the portal clip plane and
	// clears for a 3D pass.
	BeginView(v *view.View)
	SetModelView(m math.Mat4)
	SetProjection(m math.Mat4)
	SetDepthRange(near, far float32)

	// Draw renders the batch in t with its shader, fog and lights.
	Draw(t *surface.Tess)

	// ReadDepth returns the depth buffer value at a window pixel.
	ReadDepth(x, y int) float32

	// Set2D switches to a pixel projection over the whole window.
	Set2D(width, height int)

	ShadowFinish()
	DrawBuffer(buffer int)
	SwapBuffers()

	// ReadPixels returns RGBA rows, bottom row first.
	ReadPixels(x, y, width, height int) ([]byte, error)
	Finish()
}

// Capturer stores screenshots.
type Capturer interface {
	Capture(name string, format int32, width, height int, pix []byte) error
}
