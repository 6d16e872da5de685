package renderer

import (
	"fmt"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/view"
)

// ClearScene starts a new scene in the current frame.
func (r *Renderer) ClearScene() {
	r.recorder.ClearScene()
}

// AddEntity adds an entity to the scene being built.
func (r *Renderer) AddEntity(e scene.Entity) error {
	if !r.inFrame {
		return ErrNotInFrame
	}
	return r.recorder.AddEntity(e)
}

// AddLight adds a dynamic light to the scene being built. It reports
// whether the light was kept.
func (r *Renderer) AddLight(l scene.DLight) bool {
	if !r.inFrame {
		return false
	}
	return r.recorder.AddLight(l)
}

// AddPoly adds a world-space polygon to the scene being built. It reports
// whether the polygon was kept.
func (r *Renderer) AddPoly(p scene.Poly) bool {
	if !r.inFrame {
		return false
	}
	return r.recorder.AddPoly(p.Shader, p.Verts)
}

// RenderScene renders everything added since the last ClearScene from the
// camera in rd, then starts a new scene.
func (r *Renderer) RenderScene(rd scene.RefDef) error {
	if !r.inFrame {
		return ErrNotInFrame
	}
	if r.aborted != nil {
		return r.aborted
	}
	if r.world == nil && rd.Flags&scene.NoWorldModel == 0 {
		return fmt.Errorf("render scene: %w", ErrNoWorld)
	}
	defer r.recorder.ClearScene()

	r.frameSceneNum++
	r.stats.Scenes++
	r.scene = r.recorder.Current()
	r.firstEntity = r.recorder.FirstEntity()

	v := view.New(rd, r.cfg.Height, r.opts)
	v.FrameSceneNum = r.frameSceneNum
	v.FrameCount = r.frameCount

	if err := r.renderView(&v); err != nil {
		r.abort(err)
		return r.aborted
	}
	return nil
}

// renderView builds the draw surfaces of one camera pass, renders any
// portal view they call for and adds the pass to the command list. Portal
// views re-enter it.
func (r *Renderer) renderView(v *view.View) error {
	if v.ViewportWidth <= 0 || v.ViewportHeight <= 0 {
		return nil
	}

	r.viewCount++
	r.stats.Views++
	if v.IsPortal {
		r.stats.PortalViews++
	}
	v.FrameCount = r.frameCount
	v.FrameSceneNum = r.frameSceneNum

	first := len(r.frame.DrawSurfs)

	v.RotateForViewer()
	// no far plane until the visible bounds are known
	v.SetupFrustum()
	v.NumPlanes = 4

	r.generateDrawSurfs(v)
	r.stats.DLights += len(v.DLights)

	return r.sortDrawSurfs(v, first)
}
