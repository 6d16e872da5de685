package renderer

import (
	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/cmdqueue"
	"github.com/Faultbox/ironsight/internal/engine/scene"
)

// White is the color 2D drawing starts each frame with.
var White = [4]float32{1, 1, 1, 1}

// The 2D calls below are cosmetic: outside a frame, or when the command
// buffer is full, they are dropped.

// SetColor sets the modulation color of subsequent 2D pictures.
func (r *Renderer) SetColor(rgba [4]float32) {
	if !r.inFrame {
		return
	}
	r.queue.TryAdd(cmdqueue.SetColor, &cmdqueue.SetColorCmd{Color: rgba})
}

// DrawStretchPic draws a screen-space rectangle with texture coordinates
// s1,t1 to s2,t2.
func (r *Renderer) DrawStretchPic(x, y, w, h, s1, t1, s2, t2 float32, sh asset.ShaderHandle) {
	if !r.inFrame {
		return
	}
	r.queue.TryAdd(cmdqueue.StretchPic, &cmdqueue.StretchPicCmd{
		Shader: int32(sh),
		X:      x, Y: y, W: w, H: h,
		S1: s1, T1: t1, S2: s2, T2: t2,
	})
}

// DrawRotatedPic is DrawStretchPic rotated by angle degrees about the
// rectangle's center.
func (r *Renderer) DrawRotatedPic(x, y, w, h, s1, t1, s2, t2 float32, sh asset.ShaderHandle, angle float32) {
	if !r.inFrame {
		return
	}
	r.queue.TryAdd(cmdqueue.RotatedPic, &cmdqueue.RotatedPicCmd{
		Shader: int32(sh),
		X:      x, Y: y, W: w, H: h,
		S1: s1, T1: t1, S2: s2, T2: t2,
		Angle: angle,
	})
}

// DrawGradientPic is DrawStretchPic fading to gradient: towards the bottom
// edge for type 0, towards the right edge otherwise.
func (r *Renderer) DrawGradientPic(x, y, w, h, s1, t1, s2, t2 float32, sh asset.ShaderHandle, gradient [4]uint8, gradientType int) {
	if !r.inFrame {
		return
	}
	r.queue.TryAdd(cmdqueue.GradientPic, &cmdqueue.GradientPicCmd{
		Shader: int32(sh),
		X:      x, Y: y, W: w, H: h,
		S1: s1, T1: t1, S2: s2, T2: t2,
		Gradient:     gradient,
		GradientType: int32(gradientType),
	})
}

// Add2DPolys draws screen-space polygons. Positions are in pixels. It
// reports whether the polygons were queued.
func (r *Renderer) Add2DPolys(polys []scene.Poly) bool {
	if !r.inFrame || len(polys) == 0 {
		return false
	}

	first := len(r.frame.Polys2D)
	for _, p := range polys {
		if len(p.Verts) < 3 {
			continue
		}
		verts, ok := r.recorder.AddPolyVerts(p.Verts)
		if !ok {
			r.log.Debug("2d poly verts exhausted")
			break
		}
		r.frame.Polys2D = append(r.frame.Polys2D, scene.Poly{Shader: p.Shader, Verts: verts})
	}

	count := len(r.frame.Polys2D) - first
	if count == 0 {
		return false
	}
	if !r.queue.TryAdd(cmdqueue.Polys2D, &cmdqueue.Polys2DCmd{First: int32(first), Count: int32(count)}) {
		r.frame.Polys2D = r.frame.Polys2D[:first]
		return false
	}
	return true
}

// TakeScreenshot captures a window rectangle at the end of the commands
// queued so far. The rectangle is in device pixels, bottom-left origin.
func (r *Renderer) TakeScreenshot(x, y, width, height int, name string, format int32) bool {
	if !r.inFrame {
		return false
	}
	return r.queue.TryAdd(cmdqueue.Screenshot, &cmdqueue.ScreenshotCmd{
		X: int32(x), Y: int32(y),
		Width: int32(width), Height: int32(height),
		Format: format,
		Name:   r.frame.AddName(name),
	})
}

// Finish makes the back end wait for the device to complete all work
// queued so far.
func (r *Renderer) Finish() bool {
	if !r.inFrame {
		return false
	}
	return r.queue.TryAdd(cmdqueue.Finish, &cmdqueue.FinishCmd{})
}
