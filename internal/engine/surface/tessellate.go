package surface

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/pkg/math"
)

// RailCoreWidth is the half width of rail and beam quads.
const RailCoreWidth = 6

var tessellators [NumKinds]func(t *Tess, s Surface)

func init() {
	tessellators = [NumKinds]func(t *Tess, s Surface){
		KindBad:       tessBad,
		KindSkip:      func(*Tess, Surface) {},
		KindFace:      tessFace,
		KindTriangles: tessTriangles,
		KindFoliage:   tessFoliage,
		KindPoly:      tessPoly,
		KindMesh:      tessMesh,
		KindEntity:    tessEntity,
		KindFlare:     tessFlare,
	}
}

func tessBad(t *Tess, _ Surface) {
	t.Bad++
}

func tessFace(t *Tess, s Surface) {
	f := s.(*Face)
	t.appendIndexed(f.Verts, f.Indexes)
}

func tessTriangles(t *Tess, s Surface) {
	tr := s.(*Triangles)
	t.appendIndexed(tr.Verts, tr.Indexes)
}

func tessFoliage(t *Tess, s Surface) {
	f := s.(*Foliage)
	if len(f.Indexes) == 0 {
		return
	}
	limit := f.DrawDistance * f.DrawDistance
	for _, inst := range f.Instances {
		if limit > 0 && inst.Origin.DistanceSquared(t.ViewOrigin) > limit {
			continue
		}
		if !t.Reserve(len(f.Verts), len(f.Indexes)) {
			return
		}
		base := uint32(len(t.Verts))
		for _, v := range f.Verts {
			v.Pos = v.Pos.Add(inst.Origin)
			v.Color = inst.Color
			t.Verts = append(t.Verts, v)
		}
		for _, i := range f.Indexes {
			t.Indexes = append(t.Indexes, base+i)
		}
	}
}

func tessPoly(t *Tess, s Surface) {
	p := s.(*Poly)
	n := len(p.Verts)
	if n < 3 || !t.Reserve(n, 3*(n-2)) {
		return
	}
	base := uint32(len(t.Verts))
	for _, pv := range p.Verts {
		t.Verts = append(t.Verts, Vertex{Pos: pv.Pos, ST: pv.ST, Color: pv.Color})
	}
	for i := uint32(0); i < uint32(n-2); i++ {
		t.Indexes = append(t.Indexes, base, base+i+1, base+i+2)
	}
}

// tessMesh interpolates between the entity's old and current frame.
func tessMesh(t *Tess, s Surface) {
	m := s.(*Mesh)
	if len(m.Vertices) == 0 || len(m.Indexes) == 0 {
		return
	}

	frame, oldFrame, backLerp := 0, 0, float32(0)
	if e := t.Entity; e != nil {
		frame, oldFrame, backLerp = e.Frame, e.OldFrame, e.BackLerp
	}
	frame = clampFrame(frame, len(m.Vertices))
	oldFrame = clampFrame(oldFrame, len(m.Vertices))

	cur, old := m.Vertices[frame], m.Vertices[oldFrame]
	if !t.Reserve(len(cur), len(m.Indexes)) {
		return
	}

	color := [4]uint8{255, 255, 255, 255}
	if t.Entity != nil && t.Shader != nil && t.Shader.EntityColor {
		color = t.Entity.ShaderRGBA
	}

	base := uint32(len(t.Verts))
	for i, v := range cur {
		out := Vertex{Pos: v.Pos, Normal: v.Normal, Color: color}
		if backLerp != 0 && i < len(old) {
			out.Pos = v.Pos.Lerp(old[i].Pos, backLerp)
			out.Normal = v.Normal.Lerp(old[i].Normal, backLerp).Normalize()
		}
		if i < len(m.ST) {
			out.ST = m.ST[i]
		}
		t.Verts = append(t.Verts, out)
	}
	for _, i := range m.Indexes {
		t.Indexes = append(t.Indexes, base+i)
	}
}

func clampFrame(f, n int) int {
	if f < 0 || f >= n {
		return 0
	}
	return f
}

func tessFlare(t *Tess, s Surface) {
	f := s.(*Flare)
	if t.Flares != nil {
		t.Flares.AddFlare(s, t.FogNum, f.Origin, f.Color, f.Normal)
	}
}

func tessEntity(t *Tess, _ Surface) {
	e := t.Entity
	if e == nil {
		t.Bad++
		return
	}
	switch e.Type {
	case scene.EntitySprite:
		tessSprite(t, e)
	case scene.EntityBeam:
		tessBeam(t, e)
	case scene.EntityRailCore:
		tessRailCore(t, e)
	case scene.EntityLightning:
		tessLightning(t, e)
	case scene.EntitySplash:
		tessSplash(t, e)
	default:
		tessAxis(t)
	}
}

func tessSprite(t *Tess, e *scene.Entity) {
	var left, up math.Vec3
	if e.Rotation == 0 {
		left = t.ViewAxis[1].Scale(e.Radius)
		up = t.ViewAxis[2].Scale(e.Radius)
	} else {
		s, c := math32.Sincos(e.Rotation * math32.Pi / 180)
		left = t.ViewAxis[1].Scale(c*e.Radius).MA(-s*e.Radius, t.ViewAxis[2])
		up = t.ViewAxis[2].Scale(c*e.Radius).MA(s*e.Radius, t.ViewAxis[1])
	}
	if t.IsMirror {
		left = left.Negate()
	}
	t.AddQuadStamp(e.Origin, left, up, e.ShaderRGBA)
}

// tessBeam draws a beam from Origin to OldOrigin as a camera facing strip.
func tessBeam(t *Tess, e *scene.Entity) {
	start, end := e.Origin, e.OldOrigin
	width := e.Radius
	if width <= 0 {
		width = RailCoreWidth
	}
	dir := end.Sub(start)
	length := dir.Length()
	if length == 0 {
		return
	}
	right := beamRight(t.ViewOrigin, start, end)
	railCore(t, start, end, right, length, width, e.ShaderRGBA)
}

func tessRailCore(t *Tess, e *scene.Entity) {
	start, end := e.OldOrigin, e.Origin
	length := end.Sub(start).Length()
	if length == 0 {
		return
	}
	right := beamRight(t.ViewOrigin, start, end)
	railCore(t, start, end, right, length, RailCoreWidth, e.ShaderRGBA)
}

// tessLightning draws four rail cores rotated 45 degrees apart around the
// bolt so it reads from any side.
func tessLightning(t *Tess, e *scene.Entity) {
	start, end := e.OldOrigin, e.Origin
	dir := end.Sub(start)
	length := dir.Length()
	if length == 0 {
		return
	}
	dir = dir.Scale(1 / length)
	right := beamRight(t.ViewOrigin, start, end)
	for i := 0; i < 4; i++ {
		railCore(t, start, end, right, length, 8, e.ShaderRGBA)
		right = math.RotatePointAroundVector(dir, right, 45)
	}
}

func tessSplash(t *Tess, e *scene.Entity) {
	left := math.Vec3{Y: e.Radius}
	up := math.Vec3{X: e.Radius}
	t.AddQuadStamp(e.Origin, left, up, e.ShaderRGBA)
}

// tessAxis draws the three axes of an entity whose model is missing.
func tessAxis(t *Tess) {
	colors := [3][4]uint8{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}}
	axis := math.AxisIdentity()
	for i := range axis {
		end := axis[i].Scale(16)
		right := beamRight(t.ViewOrigin, math.Vec3{}, end)
		railCore(t, math.Vec3{}, end, right, 16, 1, colors[i])
	}
}

// beamRight returns the side vector of a segment as seen from viewer.
func beamRight(viewer, start, end math.Vec3) math.Vec3 {
	v1 := start.Sub(viewer).Normalize()
	v2 := end.Sub(viewer).Normalize()
	right := v1.Cross(v2)
	if right.LengthSquared() == 0 {
		right = math.PerpendicularVector(end.Sub(start).Normalize())
	}
	return right.Normalize()
}

func railCore(t *Tess, start, end, up math.Vec3, length, width float32, color [4]uint8) {
	if !t.Reserve(4, 6) {
		return
	}
	s := length / 256
	dim := color
	dim[0], dim[1], dim[2] = color[0]/4, color[1]/4, color[2]/4

	base := uint32(len(t.Verts))
	t.Verts = append(t.Verts,
		Vertex{Pos: start.MA(width, up), ST: [2]float32{0, 0}, Color: dim},
		Vertex{Pos: start.MA(-width, up), ST: [2]float32{0, 1}, Color: color},
		Vertex{Pos: end.MA(width, up), ST: [2]float32{s, 0}, Color: color},
		Vertex{Pos: end.MA(-width, up), ST: [2]float32{s, 1}, Color: color},
	)
	t.Indexes = append(t.Indexes, base, base+1, base+2, base+2, base+1, base+3)
}
