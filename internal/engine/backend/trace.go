package backend

import (
	"fmt"
	"strings"

	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Device operations recorded by TraceDevice.
const (
	OpBeginView    = "BeginView"
	OpModelView    = "SetModelView"
	OpProjection   = "SetProjection"
	OpDepthRange   = "SetDepthRange"
	OpDraw         = "Draw"
	OpReadDepth    = "ReadDepth"
	OpSet2D        = "Set2D"
	OpShadowFinish = "ShadowFinish"
	OpDrawBuffer   = "DrawBuffer"
	OpSwapBuffers  = "SwapBuffers"
	OpReadPixels   = "ReadPixels"
	OpFinish       = "Finish"
)

// Call is one recorded device call.
type Call struct {
	Op string

	// Draw
	Shader   string
	FogNum   int
	Verts    int
	Indexes  int
	Dlighted bool
	Entity   bool // drawn with an entity loaded

	// BeginView
	Portal bool
	Mirror bool

	Args []float32
}

func (c Call) String() string {
	switch c.Op {
	case OpDraw:
		return fmt.Sprintf("%s shader=%s fog=%d verts=%d idx=%d dlight=%t entity=%t",
			c.Op, c.Shader, c.FogNum, c.Verts, c.Indexes, c.Dlighted, c.Entity)
	case OpBeginView:
		return fmt.Sprintf("%s portal=%t mirror=%t %v", c.Op, c.Portal, c.Mirror, c.Args)
	case OpModelView, OpProjection:
		return c.Op
	}
	if len(c.Args) > 0 {
		return fmt.Sprintf("%s %v", c.Op, c.Args)
	}
	return c.Op
}

// TraceDevice is a Device that records every call instead of drawing.
type TraceDevice struct {
	Calls []Call

	// Depth is returned by ReadDepth unless DepthAt is set.
	Depth   float32
	DepthAt func(x, y int) float32
}

// NewTraceDevice returns a trace device whose depth buffer reads as the
// far plane.
func NewTraceDevice() *TraceDevice {
	return &TraceDevice{Depth: 1}
}

// Reset forgets recorded calls.
func (d *TraceDevice) Reset() {
	d.Calls = d.Calls[:0]
}

// Count returns how many calls of op were recorded.
func (d *TraceDevice) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Draws returns the recorded Draw calls.
func (d *TraceDevice) Draws() []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Op == OpDraw {
			out = append(out, c)
		}
	}
	return out
}

func (d *TraceDevice) String() string {
	var b strings.Builder
	for i, c := range d.Calls {
		fmt.Fprintf(&b, "%4d %s\n", i, c)
	}
	return b.String()
}

func (d *TraceDevice) record(op string, args ...float32) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

func (d *TraceDevice) BeginView(v *view.View) {
	d.Calls = append(d.Calls, Call{
		Op:     OpBeginView,
		Portal: v.IsPortal,
		Mirror: v.IsMirror,
		Args: []float32{
			float32(v.ViewportX), float32(v.ViewportY),
			float32(v.ViewportWidth), float32(v.ViewportHeight),
		},
	})
}

func (d *TraceDevice) SetModelView(math.Mat4)  { d.record(OpModelView) }
func (d *TraceDevice) SetProjection(math.Mat4) { d.record(OpProjection) }

func (d *TraceDevice) SetDepthRange(near, far float32) {
	d.record(OpDepthRange, near, far)
}

func (d *TraceDevice) Draw(t *surface.Tess) {
	c := Call{
		Op:       OpDraw,
		FogNum:   t.FogNum,
		Verts:    len(t.Verts),
		Indexes:  len(t.Indexes),
		Dlighted: t.Dlighted,
		Entity:   t.Entity != nil,
	}
	if t.Shader != nil {
		c.Shader = t.Shader.Name
	}
	d.Calls = append(d.Calls, c)
}

func (d *TraceDevice) ReadDepth(x, y int) float32 {
	d.record(OpReadDepth, float32(x), float32(y))
	if d.DepthAt != nil {
		return d.DepthAt(x, y)
	}
	return d.Depth
}

func (d *TraceDevice) Set2D(width, height int) {
	d.record(OpSet2D, float32(width), float32(height))
}

func (d *TraceDevice) ShadowFinish()         { d.record(OpShadowFinish) }
func (d *TraceDevice) DrawBuffer(buffer int) { d.record(OpDrawBuffer, float32(buffer)) }
func (d *TraceDevice) SwapBuffers()          { d.record(OpSwapBuffers) }
func (d *TraceDevice) Finish()               { d.record(OpFinish) }

func (d *TraceDevice) ReadPixels(x, y, width, height int) ([]byte, error) {
	d.record(OpReadPixels, float32(x), float32(y), float32(width), float32(height))
	return make([]byte, width*height*4), nil
}
