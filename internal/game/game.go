// Package game runs the client: it owns the window, feeds input to the
// camera and renders the demo arena every frame.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/config"
	"github.com/Faultbox/ironsight/internal/engine/capture"
	"github.com/Faultbox/ironsight/internal/engine/gldevice"
	"github.com/Faultbox/ironsight/internal/engine/input"
	"github.com/Faultbox/ironsight/internal/engine/renderer"
	"github.com/Faultbox/ironsight/internal/engine/texture"
	"github.com/Faultbox/ironsight/internal/engine/window"
	"github.com/Faultbox/ironsight/internal/logger"
)

const title = "Ironsight"

// Game is the main client instance.
type Game struct {
	cfg     *config.Config
	running bool

	window  *window.Window
	input   *input.Input
	device  *gldevice.Device
	session *Session

	watcher *config.Watcher
	reload  chan *config.Config

	log *zap.Logger
}

// New opens the window and builds the renderer. configPath, when not
// empty, is watched and reapplied on every save.
func New(cfg *config.Config, configPath string) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		reload: make(chan *config.Config, 1),
		log:    logger.Named("game"),
	}
	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	var err error
	g.window, err = window.New(window.Config{
		Title:       title,
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		Multisample: cfg.Graphics.Multisample,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// the device needs the GL context the window just made current
	width, height := g.window.GetSize()
	textures := texture.NewLoader(cfg.Graphics.TextureDir)
	textures.MaxSize = cfg.Graphics.MaxTextureSize
	g.device, err = gldevice.New(gldevice.Config{
		Width:    width,
		Height:   height,
		Textures: textures,
		Swap:     g.window.SwapBuffers,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	g.session, err = NewSession(cfg, g.device)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.session.Resize(width, height)
	g.session.SetCapturer(capture.NewWriter(cfg.Capture.Dir, "shot"))

	g.input = input.New()
	g.window.SetRelativeMouse(true)

	if configPath != "" {
		g.watcher, err = config.Watch(configPath, func(c *config.Config) {
			// keep only the newest unapplied config
			select {
			case <-g.reload:
			default:
			}
			g.reload <- c
		})
		if err != nil {
			g.log.Warn("config hot reload disabled", zap.Error(err))
		}
	}

	g.log.Info("initialized")
	return g, nil
}

// Run starts the main loop and returns when the window is closed.
func (g *Game) Run() error {
	g.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	var frameBudget time.Duration
	if g.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	}

	g.log.Info("starting main loop")
	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()
		g.applyReload()

		g.session.Look(g.input.MouseDelta())
		g.session.Move(MoveIntent(g.input.IsKeyDown), dt)

		if err := g.session.Frame(int(now.Sub(start).Milliseconds())); err != nil {
			if !errors.Is(err, renderer.ErrFrameAborted) {
				return fmt.Errorf("render error: %w", err)
			}
			g.log.Warn("frame dropped", zap.Error(err))
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(fmt.Sprintf("%s - %d fps", title, frameCount))
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}
	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := g.window.GetSize()
			g.device.Resize(w, h)
			g.session.Resize(w, h)
		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_F12:
				g.session.RequestScreenshot("")
			case sdl.SCANCODE_F1:
				g.session.LogStats()
			}
		}
	}
}

func (g *Game) applyReload() {
	select {
	case cfg := <-g.reload:
		g.session.Apply(cfg)
		g.log.Info("render settings reapplied")
	default:
	}
}

// Close releases everything New created.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("closing config watcher", zap.Error(err))
		}
	}
	if g.device != nil {
		g.device.Destroy()
	}
	if g.window != nil {
		g.window.Close()
	}
}
