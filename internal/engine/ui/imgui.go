// Package ui provides the ImGui backend and the renderer debug panels the
// inspector shows next to the frame.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// fontPaths are monospace fonts tried in order; the ImGui default font is
// used when none exists.
var fontPaths = []string{
	"/System/Library/Fonts/Menlo.ttc",
	"C:\\Windows\\Fonts\\consola.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates the window, the ImGui context and a GL context.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(b.loadFont)
	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

func (b *Backend) loadFont() {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg := imgui.NewFontConfig()
		defer cfg.Destroy()
		imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, 15.0, cfg, nil)
		return
	}
}

// Run starts the main loop; loop is called once per frame.
func (b *Backend) Run(loop func()) {
	b.backend.Run(loop)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetViewport returns the main viewport work area.
func (b *Backend) GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// Image draws a GL texture that was rendered bottom-up, scaled to fit
// avail while keeping its aspect ratio. It reports whether the mouse is
// over the image.
func Image(texID uint32, texW, texH int32, avail imgui.Vec2) bool {
	if texW <= 0 || texH <= 0 {
		return false
	}
	w, h := Fit(float32(texW), float32(texH), avail.X, avail.Y)
	ref := imgui.NewTextureRefTextureID(imgui.TextureID(texID))
	imgui.ImageWithBgV(
		*ref,
		imgui.NewVec2(w, h),
		imgui.NewVec2(0, 1), // GL rows run bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
	return imgui.IsItemHovered()
}

// Fit scales w x h to the largest size inside availW x availH with the
// same aspect ratio.
func Fit(w, h, availW, availH float32) (float32, float32) {
	if w <= 0 || h <= 0 || availW <= 0 || availH <= 0 {
		return 0, 0
	}
	scale := min(availW/w, availH/h)
	return w * scale, h * scale
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}
