package backend

import (
	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/internal/engine/world"
)

// Frame is everything the command records of one frame refer to. Frames
// are double buffered with the command queue.
type Frame struct {
	Number int
	Width  int
	Height int

	Scene   *scene.Frame
	Shaders asset.Cache
	World   *world.World // nil when no map is loaded

	// Views are the camera snapshots DrawSurfs records point at.
	Views     []view.View
	DrawSurfs []surface.DrawSurf
	Polys2D   []scene.Poly
	Names     []string

	FlareShader *asset.Shader
	Commands    []byte
}

// Reset empties the frame for reuse, keeping its storage.
func (f *Frame) Reset() {
	f.Views = f.Views[:0]
	f.DrawSurfs = f.DrawSurfs[:0]
	f.Polys2D = f.Polys2D[:0]
	f.Names = f.Names[:0]
	f.Commands = nil
}

// AddName stores a string for a command and returns its index.
func (f *Frame) AddName(s string) int32 {
	f.Names = append(f.Names, s)
	return int32(len(f.Names) - 1)
}

// AddView stores a camera snapshot and returns its index.
func (f *Frame) AddView(v *view.View) int32 {
	f.Views = append(f.Views, *v)
	return int32(len(f.Views) - 1)
}
