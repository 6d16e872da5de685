// Package camera turns user input into the view origin and axis of a
// scene.RefDef. The world is z-up; angles are in degrees, and a positive
// pitch looks down.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

// FovY returns the vertical field of view matching fovX on a width x
// height viewport.
func FovY(fovX float32, width, height int) float32 {
	if width <= 0 || height <= 0 {
		return fovX
	}
	x := float32(width) / math32.Tan(fovX/360*math32.Pi)
	return math32.Atan2(float32(height), x) * 360 / math32.Pi
}

// RefDef builds a full-window scene definition looking along axis.
func RefDef(origin math.Vec3, axis math.Axis, fovX float32, width, height, timeMs int) scene.RefDef {
	return scene.RefDef{
		Width:      width,
		Height:     height,
		FovX:       fovX,
		FovY:       FovY(fovX, width, height),
		ViewOrigin: origin,
		ViewAxis:   axis,
		Time:       timeMs,
	}
}

// FirstPerson is a free-flying camera.
type FirstPerson struct {
	Origin     math.Vec3
	Pitch, Yaw float32

	Speed       float32 // units per second
	Sensitivity float32 // degrees per mouse count
	MaxPitch    float32
}

// NewFirstPerson returns a camera at origin looking along +x.
func NewFirstPerson(origin math.Vec3) *FirstPerson {
	return &FirstPerson{
		Origin:      origin,
		Speed:       320,
		Sensitivity: 0.022 * 5,
		MaxPitch:    89,
	}
}

// Look turns the camera by a mouse delta.
func (c *FirstPerson) Look(dx, dy int) {
	c.Yaw = wrapDegrees(c.Yaw - float32(dx)*c.Sensitivity)
	c.Pitch = clamp(c.Pitch+float32(dy)*c.Sensitivity, -c.MaxPitch, c.MaxPitch)
}

// Move flies the camera for dt seconds. forward, right and up are in
// [-1, 1]; forward follows the view pitch, up is always world z.
func (c *FirstPerson) Move(forward, right, up, dt float32) {
	axis := c.Axis()
	step := c.Speed * dt
	c.Origin = c.Origin.
		MA(forward*step, axis[0]).
		MA(-right*step, axis[1]).
		MA(up*step, math.Vec3{Z: 1})
}

// Axis returns the view basis.
func (c *FirstPerson) Axis() math.Axis {
	return math.AnglesToAxis(c.Pitch, c.Yaw, 0)
}

// RefDef builds the scene definition for this camera.
func (c *FirstPerson) RefDef(fovX float32, width, height, timeMs int) scene.RefDef {
	return RefDef(c.Origin, c.Axis(), fovX, width, height, timeMs)
}

// Orbit circles a center point, for inspecting a scene from outside.
type Orbit struct {
	Center     math.Vec3
	Distance   float32
	Pitch, Yaw float32

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32 // degrees per pixel
	ZoomSensitivity float32 // fraction of the distance per wheel click
}

// NewOrbit returns an orbit camera looking down at center.
func NewOrbit(center math.Vec3) *Orbit {
	return &Orbit{
		Center:          center,
		Distance:        600,
		Pitch:           30,
		MinDistance:     32,
		MaxDistance:     8192,
		MinPitch:        -85,
		MaxPitch:        85,
		DragSensitivity: 0.3,
		ZoomSensitivity: 0.1,
	}
}

// HandleDrag rotates the camera by a mouse drag delta in pixels.
func (c *Orbit) HandleDrag(dx, dy float32) {
	c.Yaw = wrapDegrees(c.Yaw - dx*c.DragSensitivity)
	c.Pitch = clamp(c.Pitch+dy*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom moves towards the center for positive delta.
func (c *Orbit) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// Axis returns the view basis, facing the center.
func (c *Orbit) Axis() math.Axis {
	return math.AnglesToAxis(c.Pitch, c.Yaw, 0)
}

// Position returns the camera origin.
func (c *Orbit) Position() math.Vec3 {
	return c.Center.MA(-c.Distance, c.Axis()[0])
}

// FitToBounds centers on b and backs off far enough to see all of it.
func (c *Orbit) FitToBounds(b math.Bounds) {
	if b.IsEmpty() {
		return
	}
	c.Center = b.Center()
	half := b.Max.Sub(b.Min).Length() / 2
	c.Distance = clamp(half*2, c.MinDistance, c.MaxDistance)
}

// RefDef builds the scene definition for this camera.
func (c *Orbit) RefDef(fovX float32, width, height, timeMs int) scene.RefDef {
	return RefDef(c.Position(), c.Axis(), fovX, width, height, timeMs)
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}

// wrapDegrees maps an angle to [0, 360).
func wrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
