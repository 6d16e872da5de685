package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/dlight"
	"github.com/Faultbox/ironsight/internal/engine/fog"
	"github.com/Faultbox/ironsight/internal/engine/lod"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/internal/engine/world"
	"github.com/Faultbox/ironsight/pkg/math"
)

// faceCullEpsilon keeps faces the viewer is almost exactly on, hiding
// rounding gaps between the leaf data and the rasterizer.
const faceCullEpsilon = 8

// generateDrawSurfs adds every visible surface of the scene. The world goes
// first so its visible bounds can set the far clip, which model LOD
// selection needs.
func (r *Renderer) generateDrawSurfs(v *view.View) {
	dlight.Cull(v, r.scene.DLights)

	r.addWorldSurfaces(v)
	r.addPolySurfaces(v)
	r.setupProjection(v)
	r.addEntitySurfaces(v)
}

func (r *Renderer) setupProjection(v *view.View) {
	var globalDepth float32
	bounds := math.EmptyBounds()
	if r.world != nil {
		bounds = r.world.Bounds
		if g := r.fog.ComputeGlobal(v.Time); g.Enabled {
			globalDepth = g.DepthForOpaque
		}
	}
	v.SetFarClip(globalDepth, bounds)

	v.Fog = r.fog.ForView(v.IsPortal, v.Time)
	if v.Fog.Registered && v.Fog.Mode == fog.Linear {
		v.ClampFarClip(v.Fog.End)
	}
	v.SetupProjection()
}

func (r *Renderer) addWorldSurfaces(v *view.View) {
	if v.Flags&scene.NoWorldModel != 0 || r.world == nil {
		return
	}
	w := r.world

	v.ResetVisBounds()
	dlight.Transform(v.DLights, &v.World)

	for i := range w.Leaves {
		leaf := &w.Leaves[i]
		if v.CullBox(leaf.Bounds) == view.CullOut {
			r.stats.LeavesCulled++
			continue
		}
		r.stats.LeavesVisible++
		v.AddVisBounds(leaf.Bounds)

		for _, si := range leaf.Surfaces {
			if !w.Mark(si, r.viewCount) {
				continue
			}
			s := &w.Surfaces[si]
			r.addWorldSurface(v, &v.World, s, surface.WorldEntity, s.FogIndex, v.DLightBits)
		}
	}
}

// addWorldSurface adds a map surface seen through or, which is the world
// orientation or a brush entity's.
func (r *Renderer) addWorldSurface(v *view.View, or *view.Orientation, s *world.Surface, entity, fogNum int, dlightBits uint32) {
	sh := s.Shader
	if sh == nil {
		sh = r.cache.DefaultShader()
	}

	cull, front := r.cullSurface(v, or, s.Data, sh)
	if cull {
		r.stats.SurfacesCulled++
		return
	}

	if dlightBits != 0 {
		dlightBits = dlight.Surface(s.Data, v.DLights, dlightBits)
	}
	r.stats.SurfacesVisible++
	r.addDrawSurf(s.Data, sh, entity, fogNum, front, dlightBits != 0)
}

// cullSurface reports whether a map surface can be skipped. Faces are
// tested against their plane, meshes against their bounds. For two-sided
// faces it also reports whether the viewer sees the front side.
func (r *Renderer) cullSurface(v *view.View, or *view.Orientation, s surface.Surface, sh *asset.Shader) (cull, front bool) {
	if v.Options.NoCull {
		return false, false
	}

	switch s := s.(type) {
	case *surface.Face:
		d := or.ViewOrigin.Dot(s.Plane.Normal)
		switch sh.Cull {
		case asset.CullNone:
			return false, d >= s.Plane.Dist
		case asset.CullBack:
			return d > s.Plane.Dist+faceCullEpsilon, false
		default:
			return d < s.Plane.Dist-faceCullEpsilon, false
		}
	case *surface.Triangles:
		return v.CullLocalBox(or, s.Bounds) == view.CullOut, false
	case *surface.Foliage:
		return v.CullLocalBox(or, s.Bounds) == view.CullOut, false
	}
	return false, false
}

func (r *Renderer) addPolySurfaces(v *view.View) {
	for i := range r.scene.Polys {
		p := &r.scene.Polys[i]
		r.addDrawSurf((*surface.Poly)(p), r.cache.Shader(p.Shader), surface.WorldEntity, p.FogIndex, false, false)
	}
	r.stats.Polys += len(r.scene.Polys)
}

func (r *Renderer) addEntitySurfaces(v *view.View) {
	for i := range r.scene.Entities {
		e := &r.scene.Entities[i]
		num := r.firstEntity + i

		// the view weapon would show at its hacked position in mirrors
		if e.FX&scene.FirstPerson != 0 && v.IsPortal {
			continue
		}
		// the player's own body is only seen through portals
		if e.FX&scene.ThirdPerson != 0 && !v.IsPortal {
			continue
		}

		switch e.Type {
		case scene.EntityPortalSurface:
			// markers only position portal cameras
		case scene.EntityModel:
			r.addModelEntity(v, e, num)
		default:
			// generated geometry is never culled
			r.addDrawSurf(surface.Entity{}, r.cache.Shader(e.CustomShader), num, r.spriteFogNum(v, e), false, false)
		}
	}
}

func (r *Renderer) spriteFogNum(v *view.View, e *scene.Entity) int {
	if v.Flags&scene.NoWorldModel != 0 || r.world == nil {
		return 0
	}
	return r.world.FogForSphere(e.Origin, e.Radius)
}

func (r *Renderer) addModelEntity(v *view.View, e *scene.Entity, num int) {
	m := r.cache.Model(e.Model)
	if m == nil || m.Type == asset.ModelBad {
		// a missing model draws its axis so the entity is still visible
		r.addDrawSurf(surface.Entity{}, r.cache.DefaultShader(), num, 0, false, false)
		return
	}

	switch m.Type {
	case asset.ModelMesh:
		r.addMeshSurfaces(v, e, num, m)
	case asset.ModelBrush:
		r.addBrushSurfaces(v, e, num, m)
	}
}

func (r *Renderer) addMeshSurfaces(v *view.View, e *scene.Entity, num int, m *asset.Model) {
	if m.NumLODs() == 0 || len(m.LODs[0].Frames) == 0 {
		return
	}
	numFrames := len(m.LODs[0].Frames)

	if e.FX&scene.WrapFrames != 0 {
		e.Frame %= numFrames
		e.OldFrame %= numFrames
	}
	// the tessellator trusts these from here on
	if e.Frame < 0 || e.Frame >= numFrames || e.OldFrame < 0 || e.OldFrame >= numFrames {
		r.log.Debug("no such frame",
			zap.Int("frame", e.Frame),
			zap.Int("oldFrame", e.OldFrame),
			zap.String("model", m.Name))
		e.Frame, e.OldFrame = 0, 0
	}

	or := v.RotateForEntity(e)
	frame := &m.LODs[0].Frames[e.Frame]
	level := lod.Select(lod.Request{
		NumLODs: m.NumLODs(),
		Radius:  frame.Radius,
		Origin:  or.LocalPointToWorld(frame.LocalOrigin),
		Force:   e.FX&scene.ForceNoLOD != 0,
		Orient:  e.FX&scene.OrientLOD != 0,
	}, v)
	mesh := m.LODs[level]

	if r.cullModel(v, &or, mesh, e) == view.CullOut {
		r.stats.EntitiesCulled++
		return
	}
	r.stats.EntitiesVisible++

	newFrame := meshFrame(mesh, e.Frame)
	center := or.LocalPointToWorld(newFrame.LocalOrigin)

	fogNum := 0
	if v.Flags&scene.NoWorldModel == 0 && r.world != nil {
		fogNum = r.world.FogForSphere(center, newFrame.Radius)
	}
	dlighted := v.DLightBits != 0 && dlight.Sphere(center, newFrame.Radius, v.DLights) != 0

	for _, ms := range mesh.Surfaces {
		sh := r.meshShader(e, ms)
		r.addDrawSurf((*surface.Mesh)(ms), sh, num, fogNum, false, dlighted)
	}
}

// meshShader picks the material of a mesh surface: the entity's custom
// shader, then its skin, then the surface's own list indexed by skinNum.
func (r *Renderer) meshShader(e *scene.Entity, ms *asset.MeshSurface) *asset.Shader {
	if e.CustomShader != 0 {
		return r.cache.Shader(e.CustomShader)
	}
	if e.CustomSkin > 0 {
		if skin := r.cache.Skin(e.CustomSkin); skin != nil {
			if sh := skin.ShaderFor(ms.Name); sh != nil {
				if sh.IsDefault {
					r.log.Debug("skin shader not found", zap.String("skin", skin.Name), zap.String("shader", sh.Name))
				}
				return sh
			}
			r.log.Debug("no shader for surface in skin", zap.String("surface", ms.Name), zap.String("skin", skin.Name))
			return r.cache.DefaultShader()
		}
	}
	if len(ms.Shaders) == 0 {
		return r.cache.DefaultShader()
	}
	i := e.SkinNum % len(ms.Shaders)
	if i < 0 {
		i += len(ms.Shaders)
	}
	return ms.Shaders[i]
}

func meshFrame(m *asset.Mesh, i int) *asset.Frame {
	if i < 0 || i >= len(m.Frames) {
		i = 0
	}
	return &m.Frames[i]
}

// cullModel classifies a mesh by the spheres of its current and previous
// frames, falling back to their merged box when the spheres are not
// conclusive. Scaled entities always use the box.
func (r *Renderer) cullModel(v *view.View, or *view.Orientation, m *asset.Mesh, e *scene.Entity) view.Cull {
	newFrame := meshFrame(m, e.Frame)
	oldFrame := meshFrame(m, e.OldFrame)

	if !e.NonNormalizedAxes {
		sphere := v.CullLocalPointAndRadius(or, newFrame.LocalOrigin, newFrame.Radius)
		sphereOld := sphere
		if newFrame != oldFrame {
			sphereOld = v.CullLocalPointAndRadius(or, oldFrame.LocalOrigin, oldFrame.Radius)
		}
		if sphere == sphereOld {
			switch sphere {
			case view.CullOut:
				r.stats.SphereCullOut++
				return view.CullOut
			case view.CullIn:
				r.stats.SphereCullIn++
				return view.CullIn
			}
		}
		r.stats.SphereCullClip++
	}

	switch c := v.CullLocalBox(or, newFrame.Bounds.Union(oldFrame.Bounds)); c {
	case view.CullOut:
		r.stats.BoxCullOut++
		return c
	case view.CullIn:
		r.stats.BoxCullIn++
		return c
	default:
		r.stats.BoxCullClip++
		return c
	}
}

func (r *Renderer) addBrushSurfaces(v *view.View, e *scene.Entity, num int, m *asset.Model) {
	if r.world == nil {
		return
	}
	bm, ok := r.world.Model(m.Brush)
	if !ok {
		r.log.Warn("brush model out of range", zap.String("model", m.Name), zap.Int("index", m.Brush))
		return
	}

	or := v.RotateForEntity(e)
	if v.CullLocalBox(&or, bm.Bounds) == view.CullOut {
		r.stats.EntitiesCulled++
		return
	}
	r.stats.EntitiesVisible++

	var bits uint32
	if v.DLightBits != 0 {
		dlight.Transform(v.DLights, &or)
		bits = dlight.Box(bm.Bounds, v.DLights)
	}

	fogNum := 0
	if v.Flags&scene.NoWorldModel == 0 {
		center := or.LocalPointToWorld(bm.Bounds.Center())
		fogNum = r.world.FogForSphere(center, bm.Bounds.Max.Sub(bm.Bounds.Min).Scale(0.5).Length())
	}

	for _, si := range bm.Surfaces {
		if !r.world.Mark(si, r.viewCount) {
			continue
		}
		r.addWorldSurface(v, &or, &r.world.Surfaces[si], num, fogNum, bits)
	}
}

// addDrawSurf appends a surface with its sort key. Surfaces beyond the
// frame limit are dropped.
func (r *Renderer) addDrawSurf(s surface.Surface, sh *asset.Shader, entity, fogNum int, front, dlighted bool) {
	if len(r.frame.DrawSurfs) >= r.cfg.MaxDrawSurfs {
		r.stats.DrawSurfsDropped++
		return
	}
	if sh == nil {
		sh = r.cache.DefaultShader()
	}
	r.frame.DrawSurfs = append(r.frame.DrawSurfs, surface.DrawSurf{
		Surface: s,
		Key:     surface.Key(sh.SortedIndex, entity, fogNum, front, dlighted),
	})
}
