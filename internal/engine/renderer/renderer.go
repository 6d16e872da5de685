// Package renderer is the front end of the scene renderer. It turns the
// scenes recorded each frame into sorted draw surfaces, renders portal
// views, and hands the frame's command list to the back end.
package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/backend"
	"github.com/Faultbox/ironsight/internal/engine/cmdqueue"
	"github.com/Faultbox/ironsight/internal/engine/fog"
	"github.com/Faultbox/ironsight/internal/engine/portal"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/internal/engine/world"
	"github.com/Faultbox/ironsight/internal/logger"
)

var (
	// ErrFrameAborted is returned when a command the frame cannot do
	// without did not fit in the command buffer.
	ErrFrameAborted = errors.New("frame aborted")
	// ErrNoWorld is returned by RenderScene for world scenes before a
	// world is loaded.
	ErrNoWorld = errors.New("no world loaded")
	// ErrNotInFrame is returned when a scene is rendered outside
	// BeginFrame/EndFrame.
	ErrNotInFrame = errors.New("not inside a frame")
)

// DefaultMaxDrawSurfs is the per-frame draw surface limit.
const DefaultMaxDrawSurfs = 0x20000

// Config sizes the renderer.
type Config struct {
	Width  int
	Height int

	Options view.Options
	Limits  scene.Limits

	CommandBuffer int // bytes per frame buffer
	MaxDrawSurfs  int
}

// DefaultConfig returns a 1280x720 renderer with stock options.
func DefaultConfig() Config {
	return Config{
		Width:         1280,
		Height:        720,
		Options:       view.DefaultOptions(),
		Limits:        scene.DefaultLimits(),
		CommandBuffer: 256 << 10,
		MaxDrawSurfs:  DefaultMaxDrawSurfs,
	}
}

// Renderer builds and executes frames.
type Renderer struct {
	cfg   Config
	opts  view.Options
	cache asset.Cache
	world *world.World

	fog      *fog.System
	recorder *scene.Recorder
	composer *portal.Composer
	queue    *cmdqueue.Queue
	exec     *backend.Executor

	frames [2]*backend.Frame
	cur    int
	frame  *backend.Frame

	inFrame bool
	aborted error

	frameCount    int
	frameSceneNum int
	viewCount     int

	// scene being rendered
	scene       scene.Scene
	firstEntity int

	flareShader *asset.Shader
	stats       Stats
	log         *zap.Logger
}

// New returns a renderer resolving handles through cache and executing on
// dev.
func New(cfg Config, cache asset.Cache, dev backend.Device) *Renderer {
	if cfg.MaxDrawSurfs <= 0 {
		cfg.MaxDrawSurfs = DefaultMaxDrawSurfs
	}
	if cfg.CommandBuffer <= 0 {
		cfg.CommandBuffer = DefaultConfig().CommandBuffer
	}

	r := &Renderer{
		cfg:      cfg,
		cache:    cache,
		fog:      fog.NewSystem(),
		recorder: scene.NewRecorder(cfg.Limits),
		composer: portal.NewComposer(),
		queue:    cmdqueue.New(cfg.CommandBuffer),
		exec:     backend.NewExecutor(dev),
		log:      logger.Named("frontend"),
	}
	for i := range r.frames {
		r.frames[i] = &backend.Frame{
			Scene:     scene.NewFrame(cfg.Limits),
			DrawSurfs: make([]surface.DrawSurf, 0, 1024),
		}
	}
	r.frame = r.frames[0]
	r.SetOptions(cfg.Options)
	return r
}

// SetOptions replaces the toggles stamped into subsequent views.
func (r *Renderer) SetOptions(opts view.Options) {
	r.opts = opts
	r.recorder.SetDynamicLights(opts.DynamicLight)
}

// Options returns the current toggles.
func (r *Renderer) Options() view.Options {
	return r.opts
}

// SetCapturer sets where screenshot commands write to.
func (r *Renderer) SetCapturer(c backend.Capturer) {
	r.exec.SetCapturer(c)
}

// SetFlareShader sets the material flares are drawn with.
func (r *Renderer) SetFlareShader(sh *asset.Shader) {
	r.flareShader = sh
}

// Resize changes the screen size used for viewports and 2D.
func (r *Renderer) Resize(width, height int) {
	r.cfg.Width, r.cfg.Height = width, height
}

// Fog returns the fog state machine.
func (r *Renderer) Fog() *fog.System {
	return r.fog
}

// World returns the loaded world, or nil.
func (r *Renderer) World() *world.World {
	return r.world
}

// LoadWorld makes w the world rendered by subsequent scenes. A nil world
// unloads the current one.
func (r *Renderer) LoadWorld(w *world.World) {
	r.world = w
	if w == nil {
		r.recorder.SetFogLocator(nil)
		r.fog.InitGlobal([3]float32{}, 0)
		return
	}
	r.recorder.SetFogLocator(w)
	if gf, ok := w.GlobalFogVolume(); ok {
		r.fog.InitGlobal(gf.Color, gf.DepthForOpaque)
	} else {
		r.fog.InitGlobal([3]float32{}, 0)
	}
	r.log.Info("world loaded",
		zap.String("name", w.Name),
		zap.Int("leaves", len(w.Leaves)),
		zap.Int("surfaces", len(w.Surfaces)),
		zap.Int("fogs", len(w.Fogs)-1))
}

// BeginFrame starts recording a frame into the other half of the double
// buffered frame data.
func (r *Renderer) BeginFrame() error {
	if r.inFrame {
		return errors.New("begin frame: previous frame not ended")
	}

	r.frameCount++
	r.frameSceneNum = 0
	r.aborted = nil
	r.stats = Stats{Frame: r.frameCount}
	r.composer.ResetStats()

	r.queue.Toggle()
	r.cur ^= 1
	r.frame = r.frames[r.cur]
	r.frame.Reset()
	r.frame.Number = r.frameCount
	r.frame.Width = r.cfg.Width
	r.frame.Height = r.cfg.Height
	r.frame.Shaders = r.cache
	r.frame.World = r.world
	r.frame.FlareShader = r.flareShader
	r.recorder.Begin(r.frame.Scene)
	r.inFrame = true

	if err := r.queue.Add(cmdqueue.DrawBuffer, &cmdqueue.DrawBufferCmd{}); err != nil {
		r.abort(err)
	}
	return nil
}

// EndFrame closes the command list and executes it. An aborted frame is
// not executed.
func (r *Renderer) EndFrame() error {
	if !r.inFrame {
		return ErrNotInFrame
	}
	r.inFrame = false

	r.stats.Drops = r.recorder.Drops()
	r.stats.Portal = r.composer.Stats()
	if r.aborted != nil {
		r.stats.Commands = r.queue.Stats()
		return r.aborted
	}

	cmds, err := r.queue.End()
	r.stats.Commands = r.queue.Stats()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFrameAborted, err)
	}
	r.frame.Commands = cmds

	err = r.exec.Execute(r.frame)
	r.stats.Backend = r.exec.Stats()
	if err != nil {
		return fmt.Errorf("executing frame %d: %w", r.frameCount, err)
	}
	return nil
}

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Frame returns the frame being recorded, or the last executed one
// between frames.
func (r *Renderer) Frame() *backend.Frame {
	return r.frame
}

func (r *Renderer) abort(err error) {
	if r.aborted != nil {
		return
	}
	r.aborted = fmt.Errorf("%w: %w", ErrFrameAborted, err)
	r.log.Error("frame aborted", zap.Int("frame", r.frameCount), zap.Error(err))
}
