// Inspector renders the demo arena into an offscreen frame shown in an ImGui
// window, with the render options and frame counters beside it.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/config"
	"github.com/Faultbox/ironsight/internal/engine/camera"
	"github.com/Faultbox/ironsight/internal/engine/capture"
	"github.com/Faultbox/ironsight/internal/engine/framebuffer"
	"github.com/Faultbox/ironsight/internal/engine/gldevice"
	"github.com/Faultbox/ironsight/internal/engine/renderer"
	"github.com/Faultbox/ironsight/internal/engine/texture"
	"github.com/Faultbox/ironsight/internal/engine/ui"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/internal/game"
	"github.com/Faultbox/ironsight/internal/logger"
)

const controlsWidth = float32(320)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start inspector", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()
	app.Run()
}

// App is the inspector state.
type App struct {
	backend *ui.Backend
	fb      *framebuffer.Framebuffer
	device  *gldevice.Device
	session *game.Session
	orbit   *camera.Orbit

	opts   view.Options
	paused bool
	timeMs int
	last   time.Time

	lastMouse imgui.Vec2

	// paths picked in the save dialog, which runs off the main thread
	captures chan string
	status   string

	log *zap.Logger
}

// NewApp opens the inspector window and builds a session drawing into an
// offscreen frame of the configured size.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		captures: make(chan string, 1),
		last:     time.Now(),
		log:      logger.Named("inspector"),
	}

	var err error
	a.backend, err = ui.NewBackend("Ironsight Inspector", 1400, 860)
	if err != nil {
		return nil, err
	}

	width, height := cfg.Graphics.Width, cfg.Graphics.Height
	a.fb, err = framebuffer.New(int32(width), int32(height))
	if err != nil {
		return nil, err
	}

	textures := texture.NewLoader(cfg.Graphics.TextureDir)
	textures.MaxSize = cfg.Graphics.MaxTextureSize
	a.device, err = gldevice.New(gldevice.Config{
		Width:    width,
		Height:   height,
		Textures: textures,
		Target:   a.fb,
	})
	if err != nil {
		a.fb.Destroy()
		return nil, err
	}

	a.session, err = game.NewSession(cfg, a.device)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.session.SetCapturer(capture.NewWriter(cfg.Capture.Dir, "inspect"))

	a.orbit = camera.NewOrbit(a.session.Arena().Spawn)
	a.orbit.FitToBounds(a.session.Arena().World.Bounds)
	a.session.SetView(a.orbit)
	a.opts = a.session.Renderer().Options()
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() {
	a.backend.Run(a.render)
}

// Close releases the GL objects.
func (a *App) Close() {
	if a.device != nil {
		a.device.Destroy()
	}
	if a.fb != nil {
		a.fb.Destroy()
	}
}

func (a *App) render() {
	now := time.Now()
	if !a.paused {
		a.timeMs += int(now.Sub(a.last).Milliseconds())
	}
	a.last = now

	select {
	case path := <-a.captures:
		a.session.RequestScreenshot(path)
		a.status = "capturing " + path
	default:
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		a.session.RequestScreenshot("")
		a.status = "screenshot taken"
	}

	if err := a.session.Frame(a.timeMs); err != nil {
		if !errors.Is(err, renderer.ErrFrameAborted) {
			a.log.Error("frame failed", zap.Error(err))
		}
		a.status = err.Error()
	}

	posX, posY, workW, workH := a.backend.GetViewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(workW-controlsWidth, workH))
	if imgui.BeginV("Frame", nil, flags) {
		a.renderFrame()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(posX+workW-controlsWidth, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, workH))
	if imgui.BeginV("Controls", nil, flags) {
		a.renderControls()
	}
	imgui.End()
}

func (a *App) renderFrame() {
	w, h := a.fb.Size()
	if !ui.Image(a.fb.ColorTexture(), w, h, imgui.ContentRegionAvail()) {
		return
	}

	mousePos := imgui.MousePos()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		a.orbit.HandleDrag(mousePos.X-a.lastMouse.X, mousePos.Y-a.lastMouse.Y)
	}
	a.lastMouse = mousePos

	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		a.orbit.HandleZoom(wheel)
	}
}

func (a *App) renderControls() {
	if ui.OptionsPanel(&a.opts) {
		a.session.Renderer().SetOptions(a.opts)
	}

	imgui.Separator()
	imgui.Checkbox("Pause time", &a.paused)
	if imgui.Button("Reset camera") {
		a.orbit.FitToBounds(a.session.Arena().World.Bounds)
	}
	imgui.SameLine()
	if imgui.Button("Save capture...") {
		a.saveDialog()
	}
	imgui.TextDisabled("(Drag to orbit, scroll to zoom)")

	imgui.Separator()
	ui.StatsPanel(a.session.Renderer().Stats())

	if a.status != "" {
		imgui.Separator()
		imgui.TextUnformatted(a.status)
	}
}

// saveDialog asks for a capture path without blocking the frame loop.
func (a *App) saveDialog() {
	go func() {
		path, err := dialog.File().
			Filter("PNG image", "png").
			Filter("WebP image", "webp").
			Filter("BMP image", "bmp").
			Title("Save capture").
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				a.log.Warn("save dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case a.captures <- path:
		default:
			a.log.Warn("capture already pending", zap.String("path", path))
		}
	}()
}
