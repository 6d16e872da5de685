package game

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/config"
	"github.com/Faultbox/ironsight/internal/demo"
	"github.com/Faultbox/ironsight/internal/engine/backend"
	"github.com/Faultbox/ironsight/internal/engine/camera"
	"github.com/Faultbox/ironsight/internal/engine/capture"
	"github.com/Faultbox/ironsight/internal/engine/renderer"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/logger"
)

// Camera produces the scene definition of a frame.
type Camera interface {
	RefDef(fovX float32, width, height, timeMs int) scene.RefDef
}

// Session renders the demo arena from a first person camera. It does not
// touch the window, so it runs on any device.
type Session struct {
	r     *renderer.Renderer
	arena *demo.Arena
	cam   *camera.FirstPerson
	view  Camera

	fovX          float32
	width, height int

	format     int32
	screenshot bool
	shotName   string

	log *zap.Logger
}

// NewSession builds the arena and a renderer drawing on dev.
func NewSession(cfg *config.Config, dev backend.Device) (*Session, error) {
	arena, err := demo.Build()
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	rc := renderer.ConfigFromSettings(cfg)
	s := &Session{
		r:      renderer.New(rc, arena.Cache, dev),
		arena:  arena,
		cam:    camera.NewFirstPerson(arena.Spawn),
		width:  rc.Width,
		height: rc.Height,
		log:    logger.Named("session"),
	}
	s.view = s.cam
	s.r.SetFlareShader(arena.FlareShader)
	s.r.LoadWorld(arena.World)
	s.Apply(cfg)
	return s, nil
}

// Renderer returns the session's renderer.
func (s *Session) Renderer() *renderer.Renderer {
	return s.r
}

// Camera returns the first person camera Look and Move steer.
func (s *Session) Camera() *camera.FirstPerson {
	return s.cam
}

// Arena returns the map the session renders.
func (s *Session) Arena() *demo.Arena {
	return s.arena
}

// SetView renders frames from c instead of the first person camera. A nil
// c switches back.
func (s *Session) SetView(c Camera) {
	if c == nil {
		c = s.cam
	}
	s.view = c
}

// Apply takes the render options, field of view and capture format from
// cfg. Window settings need a restart and are ignored.
func (s *Session) Apply(cfg *config.Config) {
	s.r.SetOptions(renderer.OptionsFromConfig(cfg.Render))
	s.fovX = cfg.Graphics.FOV
	if s.fovX <= 0 {
		s.fovX = 90
	}

	format, err := capture.ParseFormat(cfg.Capture.Format)
	if err != nil {
		s.log.Warn("keeping previous capture format", zap.Error(err))
		return
	}
	s.format = format
}

// SetCapturer sets where screenshots are written.
func (s *Session) SetCapturer(c backend.Capturer) {
	s.r.SetCapturer(c)
}

// Resize changes the size of the rendered frame.
func (s *Session) Resize(width, height int) {
	s.width, s.height = width, height
	s.r.Resize(width, height)
}

// RequestScreenshot captures the whole frame at the end of the next Frame.
// An empty name is replaced by a timestamp. A name ending in a known image
// extension is saved in that format.
func (s *Session) RequestScreenshot(name string) {
	s.screenshot = true
	s.shotName = name
}

func (s *Session) shotFormat() int32 {
	ext := strings.TrimPrefix(filepath.Ext(s.shotName), ".")
	if ext == "" {
		return s.format
	}
	if f, err := capture.ParseFormat(ext); err == nil {
		return f
	}
	return s.format
}

// LogStats writes the counters of the last frame to the log.
func (s *Session) LogStats() {
	for _, line := range strings.Split(strings.TrimRight(s.r.Stats().String(), "\n"), "\n") {
		s.log.Info(line)
	}
}

// Look turns the camera by a mouse delta.
func (s *Session) Look(dx, dy int) {
	if dx != 0 || dy != 0 {
		s.cam.Look(dx, dy)
	}
}

// Intent is the movement asked for by held keys, each axis in [-1, 1].
type Intent struct {
	Forward, Right, Up float32
	Run                bool
}

// MoveIntent reads the movement keys through down.
func MoveIntent(down func(sdl.Scancode) bool) Intent {
	axis := func(pos, neg sdl.Scancode) float32 {
		var v float32
		if down(pos) {
			v++
		}
		if down(neg) {
			v--
		}
		return v
	}
	return Intent{
		Forward: axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
		Right:   axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
		Up:      axis(sdl.SCANCODE_SPACE, sdl.SCANCODE_LCTRL),
		Run:     down(sdl.SCANCODE_LSHIFT),
	}
}

// Move moves the camera for dt seconds.
func (s *Session) Move(in Intent, dt float32) {
	if in.Run {
		dt *= 2
	}
	s.cam.Move(in.Forward, in.Right, in.Up, dt)
}

// Frame renders one frame of the arena at timeMs.
func (s *Session) Frame(timeMs int) error {
	if err := s.r.BeginFrame(); err != nil {
		return err
	}
	if err := s.record(timeMs); err != nil {
		// the frame is already lost; close it so the next one can begin
		_ = s.r.EndFrame()
		return err
	}
	return s.r.EndFrame()
}

func (s *Session) record(timeMs int) error {
	if err := s.arena.Populate(s.r, timeMs); err != nil {
		return err
	}
	if err := s.r.RenderScene(s.view.RefDef(s.fovX, s.width, s.height, timeMs)); err != nil {
		return err
	}

	// crosshair
	cx, cy := float32(s.width)/2, float32(s.height)/2
	s.r.SetColor([4]float32{1, 1, 1, 0.8})
	s.r.DrawStretchPic(cx-2, cy-2, 4, 4, 0, 0, 1, 1, 0)
	s.r.SetColor([4]float32{1, 1, 1, 1})

	if s.screenshot {
		s.screenshot = false
		if !s.r.TakeScreenshot(0, 0, s.width, s.height, s.shotName, s.shotFormat()) {
			s.log.Warn("screenshot did not fit in the frame")
		}
	}
	return nil
}
