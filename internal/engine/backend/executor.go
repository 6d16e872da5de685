package backend

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/cmdqueue"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/internal/logger"
	"github.com/Faultbox/ironsight/pkg/math"
)

var white = [4]uint8{255, 255, 255, 255}

// Executor replays frames on a device. It keeps the flare pool between
// frames; everything else is rebuilt per frame.
type Executor struct {
	dev     Device
	tess    *surface.Tess
	flares  flarePool
	capture Capturer
	stats   Stats
	log     *zap.Logger

	frame   *Frame
	view    *view.View
	or      view.Orientation
	dlights []scene.DLight

	projection2D bool
	color2D      [4]uint8
}

// NewExecutor returns an executor drawing on dev.
func NewExecutor(dev Device) *Executor {
	x := &Executor{
		dev:     dev,
		tess:    surface.NewTess(surface.DefaultMaxVerts, surface.DefaultMaxIndexes),
		log:     logger.Named("backend"),
		color2D: white,
	}
	x.tess.Flush = x.drawBatch
	x.tess.Flares = x
	return x
}

// SetCapturer sets where screenshots go. Without one they are dropped.
func (x *Executor) SetCapturer(c Capturer) {
	x.capture = c
}

// Stats returns the counters of the last Execute.
func (x *Executor) Stats() Stats {
	return x.stats
}

// Execute replays the frame's command records in order.
func (x *Executor) Execute(f *Frame) error {
	x.frame = f
	x.stats = Stats{}
	x.tess.Bad = 0
	defer func() {
		x.stats.BadSurfaces = x.tess.Bad
		x.frame = nil
		x.view = nil
	}()

	r := cmdqueue.NewReader(f.Commands)
	for {
		id, payload, err := r.Next()
		if err != nil {
			return fmt.Errorf("reading commands: %w", err)
		}
		if id == cmdqueue.EndOfList {
			x.endSurface()
			return nil
		}
		if err := x.execute(id, payload); err != nil {
			return fmt.Errorf("executing %v: %w", id, err)
		}
	}
}

func (x *Executor) execute(id cmdqueue.ID, payload []byte) error {
	switch id {
	case cmdqueue.SetColor:
		var c cmdqueue.SetColorCmd
		if err := cmdqueue.Decode(payload, &c); err != nil {
			return err
		}
		for i := range c.Color {
			x.color2D[i] = toByte(c.Color[i])
		}

	case cmdqueue.StretchPic:
		var c cmdqueue.StretchPicCmd
		if err := cmdqueue.Decode(payload, &c); err != nil {
			return err
		}
		x.stretchPic(&c)

	case cmdqueue.RotatedPic:
		var c cmdqueue.RotatedPicCmd
		if err := cmdqueue.Decode(payload, &c); err != nil {
			return err
		}
		x.rotatedPic(&c)

	case cmdqueue.GradientPic:
		var c cmdqueue.GradientPicCmd
		if err := cmdqueue.Decode(payload, &c); err != nil {
			return err
		}
		x.gradientPic(&c)

	case cmdqueue.Polys2D:
		var c cmdqueue.Polys2DCmd
		if err := cmdqueue.Decode(payload, &c); err != nil {
			return err
		}
		if c.First < 0 || c.Count < 0 || int(c.First+c.Count) > len(x.frame.Polys2D) {
			return fmt.Errorf("2d polys %d+%d out of range", c.First, c.Count)
		}
		x.polys2D(x.frame.Polys2D[c.First : c.First+c.Count])

	case cmdqueue.DrawSurfs:
		var c cmdqueue.DrawSurfsCmd
		if err := cmdqueue.Decode(payload, &c); err != nil {
			return err
		}
		if c.View < 0 || int(c.View) >= len(x.frame.Views) {
			return fmt.Errorf("view %d out of range", c.View)
		}
		if c.First < 0 || c.Count < 0 || int(c.First+c.Count) > len(x.frame.DrawSurfs) {
			return fmt.Errorf("draw surfs %d+%d out of range", c.First, c.Count)
		}
		x.endSurface()
		x.projection2D = false
		x.renderDrawSurfList(&x.frame.Views[c.View], x.frame.DrawSurfs[c.First:c.First+c.Count])

	case cmdqueue.DrawBuffer:
		var c cmdqueue.DrawBufferCmd
		if err := cmdqueue.Decode(payload, &c); err != nil {
			return err
		}
		x.projection2D = false
		x.dev.DrawBuffer(int(c.Buffer))

	case cmdqueue.SwapBuffers:
		x.endSurface()
		x.dev.SwapBuffers()
		x.stats.Swaps++

	case cmdqueue.Screenshot:
		var c cmdqueue.ScreenshotCmd
		if err := cmdqueue.Decode(payload, &c); err != nil {
			return err
		}
		x.endSurface()
		x.screenshot(&c)

	case cmdqueue.Finish:
		x.endSurface()
		x.dev.Finish()

	default:
		return fmt.Errorf("unknown command id %d", id)
	}
	return nil
}

// drawBatch sends the arena to the device without clearing it.
func (x *Executor) drawBatch() {
	t := x.tess
	if t.Empty() || t.Shader == nil {
		return
	}
	x.dev.Draw(t)
	x.stats.Draws++
	x.stats.Verts += len(t.Verts)
	x.stats.Indexes += len(t.Indexes)
}

func (x *Executor) endSurface() {
	x.drawBatch()
	x.tess.Reset()
}

// beginPlain starts an unlit batch in world or screen space.
func (x *Executor) beginPlain(sh *asset.Shader, fogNum int) {
	t := x.tess
	t.Begin(sh, fogNum)
	t.Dlighted = false
	t.FrontFace = false
	t.Entity = nil
	t.DLights = nil
}

func (x *Executor) shader(h int32) *asset.Shader {
	if sh := x.frame.Shaders.Shader(asset.ShaderHandle(h)); sh != nil {
		return sh
	}
	return x.frame.Shaders.DefaultShader()
}

func (x *Executor) screenshot(c *cmdqueue.ScreenshotCmd) {
	x.stats.Screenshots++
	pix, err := x.dev.ReadPixels(int(c.X), int(c.Y), int(c.Width), int(c.Height))
	if err != nil {
		x.log.Warn("screenshot read failed", zap.Error(err))
		return
	}
	if x.capture == nil {
		return
	}
	name := ""
	if c.Name >= 0 && int(c.Name) < len(x.frame.Names) {
		name = x.frame.Names[c.Name]
	}
	if err := x.capture.Capture(name, c.Format, int(c.Width), int(c.Height), pix); err != nil {
		x.log.Warn("screenshot not saved", zap.String("name", name), zap.Error(err))
	}
}

func toByte(f float32) uint8 {
	return uint8(math32.Round(max(0, min(1, f)) * 255))
}

func colorBytes(c math.Vec3) [4]uint8 {
	return [4]uint8{toByte(c.X), toByte(c.Y), toByte(c.Z), 255}
}
