package backend

import (
	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/dlight"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Depth range used by first-person models so they never clip into walls.
const depthHackFar = 0.3

// renderDrawSurfList draws a sorted list with the camera of v. Surfaces
// whose key matches the previous one are appended to the open batch
// without looking at the key again.
func (x *Executor) renderDrawSurfList(v *view.View, list []surface.DrawSurf) {
	x.view = v
	x.stats.Views++
	x.stats.Surfaces += len(list)
	x.dev.BeginView(v)
	x.dlights = append(x.dlights[:0], v.DLights...)

	t := x.tess
	t.ViewAxis = v.Or.Axis
	t.IsMirror = v.IsMirror
	x.setEntity(v, surface.WorldEntity)

	var (
		oldShader   *asset.Shader
		oldFog      = -1
		oldDlighted bool
		oldFront    bool
		oldEntity   = -1
		oldSort     uint32
		haveSort    bool

		depthHack    bool
		oldDepthHack bool
	)

	for i := range list {
		ds := &list[i]
		if haveSort && ds.Key == oldSort {
			t.Add(ds.Surface)
			continue
		}
		oldSort, haveSort = ds.Key, true

		sorted, entity, fogNum, front, dlighted := surface.Decompose(ds.Key)
		sh := x.frame.Shaders.SortedShader(sorted)
		if sh == nil {
			sh = x.frame.Shaders.DefaultShader()
		}

		// entity mergable shaders batch across entities
		if sh != oldShader || fogNum != oldFog || dlighted != oldDlighted || front != oldFront ||
			(entity != oldEntity && !sh.EntityMergable) {
			if oldShader != nil {
				x.endSurface()
			}
			t.Begin(sh, fogNum)
			t.Dlighted = dlighted
			t.FrontFace = front
			oldShader, oldFog, oldDlighted, oldFront = sh, fogNum, dlighted, front
			x.stats.Batches++
		}

		if entity != oldEntity {
			depthHack = x.setEntity(v, entity)
			x.dev.SetModelView(x.or.ModelMatrix)
			if depthHack != oldDepthHack {
				if depthHack {
					x.dev.SetDepthRange(0, depthHackFar)
				} else {
					x.dev.SetDepthRange(0, 1)
				}
				oldDepthHack = depthHack
			}
			oldEntity = entity
			x.stats.EntityChanges++
		}

		t.Add(ds.Surface)
	}

	if oldShader != nil {
		x.endSurface()
	}

	x.setEntity(v, surface.WorldEntity)
	x.dev.SetModelView(v.World.ModelMatrix)
	if depthHack {
		x.dev.SetDepthRange(0, 1)
	}

	x.drawSun(v)
	if v.Options.Shadows == 2 {
		x.dev.ShadowFinish()
	}
	x.renderFlares(v)
}

// setEntity loads the transform, shader clock and light positions of
// entity num into the arena. It reports whether the entity wants the
// depth hack.
func (x *Executor) setEntity(v *view.View, num int) bool {
	t := x.tess
	hack := false

	if num == surface.WorldEntity || num >= len(x.frame.Scene.Entities) {
		x.or = v.World
		t.Entity = nil
		t.Time = v.FloatTime
	} else {
		e := &x.frame.Scene.Entities[num]
		x.or = v.RotateForEntity(e)
		t.Entity = e
		t.Time = v.FloatTime - e.ShaderTime
		hack = e.FX&scene.DepthHack != 0
	}

	t.ViewOrigin = x.or.ViewOrigin
	dlight.Transform(x.dlights, &x.or)
	t.DLights = x.dlights
	return hack
}

// drawSun draws the sun quad at the far end of the depth range.
func (x *Executor) drawSun(v *view.View) {
	w := x.frame.World
	if !v.Options.DrawSun || w == nil || w.Sun == nil || w.Sun.Shader == nil || v.Flags&scene.NoWorldModel != 0 {
		return
	}

	o := v.Or.Origin
	x.dev.SetModelView(v.World.ModelMatrix.Mul(math.Translate(o.X, o.Y, o.Z)))

	dist := v.ZFar / 1.75 // inside the far corners of the frustum
	size := dist * 0.4
	dir := w.Sun.Direction
	side := math.PerpendicularVector(dir)
	up := dir.Cross(side)

	x.dev.SetDepthRange(1, 1)
	x.beginPlain(w.Sun.Shader, 0)
	x.tess.AddQuadStamp(dir.Scale(dist), side.Scale(size), up.Scale(size), white)
	x.endSurface()
	x.dev.SetDepthRange(0, 1)

	x.dev.SetModelView(v.World.ModelMatrix)
}
