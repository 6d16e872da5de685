package backend

import (
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

const (
	// MaxFlares is the size of the flare pool.
	MaxFlares = 128

	// flareOcclusion is how far behind the depth buffer a flare may be and
	// still count as visible.
	flareOcclusion = 24
)

// dlightFlare keys flares generated by dynamic lights.
type dlightFlare int

// flare persists across frames so it can fade in and out.
type flare struct {
	active bool
	key    any

	sceneNum int
	inPortal bool

	addedFrame    int
	visible       bool
	fadeTime      int
	drawIntensity float32

	windowX, windowY int
	eyeZ             float32

	color  math.Vec3
	fogNum int
}

type flarePool [MaxFlares]flare

func (p *flarePool) find(key any, sceneNum int, inPortal bool) *flare {
	for i := range p {
		f := &p[i]
		if f.active && f.key == key && f.sceneNum == sceneNum && f.inPortal == inPortal {
			return f
		}
	}
	return nil
}

func (p *flarePool) alloc(key any, sceneNum int, inPortal bool) *flare {
	for i := range p {
		f := &p[i]
		if !f.active {
			*f = flare{active: true, key: key, sceneNum: sceneNum, inPortal: inPortal, addedFrame: -1}
			return f
		}
	}
	return nil
}

// ActiveFlares returns the number of flares in use.
func (x *Executor) ActiveFlares() int {
	n := 0
	for i := range x.flares {
		if x.flares[i].active {
			n++
		}
	}
	return n
}

// AddFlare is called by the tessellator for flare surfaces.
func (x *Executor) AddFlare(key surface.Surface, fogNum int, origin, color, normal math.Vec3) {
	x.addFlare(key, fogNum, origin, color, normal, true)
}

func (x *Executor) addFlare(key any, fogNum int, point, color, normal math.Vec3, hasNormal bool) {
	v := x.view
	if v == nil {
		return
	}
	x.stats.FlareAdds++

	eye, clip := view.TransformModelToClip(point, x.or.ModelMatrix, v.ProjectionMatrix)
	for i := 0; i < 3; i++ {
		if clip[i] >= clip[3] || clip[i] <= -clip[3] {
			return
		}
	}
	_, win := v.TransformClipToWindow(clip)
	if win[0] < 0 || win[0] >= float32(v.ViewportWidth) || win[1] < 0 || win[1] >= float32(v.ViewportHeight) {
		return
	}

	f := x.flares.find(key, v.FrameSceneNum, v.IsPortal)
	if f == nil {
		if f = x.flares.alloc(key, v.FrameSceneNum, v.IsPortal); f == nil {
			return
		}
	}

	// not seen last frame: start faded out
	if f.addedFrame != v.FrameCount-1 {
		f.visible = false
		f.fadeTime = v.Time - 2000
	}
	f.addedFrame = v.FrameCount
	f.fogNum = fogNum
	f.color = color

	// dim as the surface turns away from the viewer
	if hasNormal {
		toViewer := v.Or.Origin.Sub(point).Normalize()
		f.color = f.color.Scale(toViewer.Dot(normal))
	}

	f.windowX = v.ViewportX + int(win[0])
	f.windowY = v.ViewportY + int(win[1])
	f.eyeZ = eye[2]
}

func (x *Executor) addDlightFlares(v *view.View) {
	w := x.frame.World
	for i := range v.DLights {
		l := &v.DLights[i]
		fogNum := 0
		if w != nil {
			fogNum = w.FogForSphere(l.Origin, 0)
		}
		x.addFlare(dlightFlare(i), fogNum, l.Origin, l.Color, math.Vec3{}, false)
	}
}

// renderFlares occlusion tests this view's flares against the depth
// buffer and draws the ones still visible or fading.
func (x *Executor) renderFlares(v *view.View) {
	if !v.Options.Flares {
		return
	}
	x.or = v.World
	x.addDlightFlares(v)

	draw := false
	for i := range x.flares {
		f := &x.flares[i]
		if !f.active {
			continue
		}
		if f.addedFrame < v.FrameCount-1 {
			f.active = false
			continue
		}
		f.drawIntensity = 0
		if f.sceneNum != v.FrameSceneNum || f.inPortal != v.IsPortal {
			continue
		}
		x.testFlare(v, f)
		if f.drawIntensity > 0 {
			draw = true
		} else {
			f.active = false
		}
	}
	if !draw {
		return
	}

	x.dev.SetModelView(math.Identity())
	x.dev.SetProjection(math.Ortho(
		float32(v.ViewportX), float32(v.ViewportX+v.ViewportWidth),
		float32(v.ViewportY), float32(v.ViewportY+v.ViewportHeight),
		-99999, 99999))

	for i := range x.flares {
		f := &x.flares[i]
		if f.active && f.sceneNum == v.FrameSceneNum && f.inPortal == v.IsPortal && f.drawIntensity > 0 {
			x.renderFlare(v, f)
		}
	}

	x.dev.SetProjection(v.ProjectionMatrix)
	x.dev.SetModelView(v.World.ModelMatrix)
}

func (x *Executor) testFlare(v *view.View, f *flare) {
	x.stats.FlareTests++

	depth := x.dev.ReadDepth(f.windowX, f.windowY)
	p := &v.ProjectionMatrix
	screenZ := p[14] / ((2*depth-1)*p[11] - p[10])
	visible := -f.eyeZ - -screenZ < flareOcclusion

	var fade float32
	elapsed := func() float32 { return float32(v.Time-f.fadeTime) / 1000 }
	if visible {
		if !f.visible {
			f.visible = true
			f.fadeTime = v.Time - 1
		}
		fade = elapsed() * v.Options.FlareFade
	} else {
		if f.visible {
			f.visible = false
			f.fadeTime = v.Time - 1
		}
		fade = 1 - elapsed()*v.Options.FlareFade
	}
	f.drawIntensity = max(0, min(1, fade))
}

func (x *Executor) renderFlare(v *view.View, f *flare) {
	x.stats.FlareRenders++

	color := colorBytes(f.color.Scale(f.drawIntensity))
	size := float32(v.ViewportWidth) * (v.Options.FlareSize/640 + 8/-f.eyeZ)

	sh := x.frame.FlareShader
	if sh == nil {
		sh = x.frame.Shaders.DefaultShader()
	}
	x.beginPlain(sh, f.fogNum)

	t := x.tess
	if !t.Reserve(4, 6) {
		return
	}
	wx, wy := float32(f.windowX), float32(f.windowY)
	t.Verts = append(t.Verts,
		surface.Vertex{Pos: math.Vec3{X: wx - size, Y: wy - size}, ST: [2]float32{0, 0}, Color: color},
		surface.Vertex{Pos: math.Vec3{X: wx - size, Y: wy + size}, ST: [2]float32{0, 1}, Color: color},
		surface.Vertex{Pos: math.Vec3{X: wx + size, Y: wy + size}, ST: [2]float32{1, 1}, Color: color},
		surface.Vertex{Pos: math.Vec3{X: wx + size, Y: wy - size}, ST: [2]float32{1, 0}, Color: color},
	)
	t.Indexes = append(t.Indexes, 0, 1, 2, 0, 2, 3)
	x.endSurface()
}
