package backend

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/cmdqueue"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/pkg/math"
)

// set2D switches the device to window pixels once per run of 2D commands.
func (x *Executor) set2D() {
	if x.projection2D {
		return
	}
	x.endSurface()
	x.beginPlain(nil, 0)
	x.dev.Set2D(x.frame.Width, x.frame.Height)
	x.projection2D = true
}

// useShader2D flushes the batch when a 2D command changes material.
func (x *Executor) useShader2D(sh *asset.Shader) {
	if sh == x.tess.Shader {
		return
	}
	x.endSurface()
	x.beginPlain(sh, 0)
}

// quad2D appends a screen quad. Corners run clockwise from the top left.
func (x *Executor) quad2D(pos [4][2]float32, st [4][2]float32, colors [4][4]uint8) {
	t := x.tess
	if !t.Reserve(4, 6) {
		return
	}
	base := uint32(len(t.Verts))
	for i := range pos {
		t.Verts = append(t.Verts, surface.Vertex{
			Pos:   math.Vec3{X: pos[i][0], Y: pos[i][1]},
			ST:    st[i],
			Color: colors[i],
		})
	}
	t.Indexes = append(t.Indexes, base+3, base, base+2, base+2, base, base+1)
	x.stats.Pics2D++
}

func picST(s1, t1, s2, t2 float32) [4][2]float32 {
	return [4][2]float32{{s1, t1}, {s2, t1}, {s2, t2}, {s1, t2}}
}

func (x *Executor) stretchPic(c *cmdqueue.StretchPicCmd) {
	x.set2D()
	x.useShader2D(x.shader(c.Shader))
	col := x.color2D
	x.quad2D(
		[4][2]float32{{c.X, c.Y}, {c.X + c.W, c.Y}, {c.X + c.W, c.Y + c.H}, {c.X, c.Y + c.H}},
		picST(c.S1, c.T1, c.S2, c.T2),
		[4][4]uint8{col, col, col, col},
	)
}

// rotatedPic spins the quad around its center.
func (x *Executor) rotatedPic(c *cmdqueue.RotatedPicCmd) {
	x.set2D()
	x.useShader2D(x.shader(c.Shader))

	s, co := math32.Sincos(c.Angle * math32.Pi / 180)
	cx, cy := c.X+c.W/2, c.Y+c.H/2
	corners := [4][2]float32{{-c.W / 2, -c.H / 2}, {c.W / 2, -c.H / 2}, {c.W / 2, c.H / 2}, {-c.W / 2, c.H / 2}}
	var pos [4][2]float32
	for i, p := range corners {
		pos[i] = [2]float32{cx + p[0]*co - p[1]*s, cy + p[0]*s + p[1]*co}
	}
	col := x.color2D
	x.quad2D(pos, picST(c.S1, c.T1, c.S2, c.T2), [4][4]uint8{col, col, col, col})
}

// gradientPic blends from the current color to Gradient, top to bottom
// for type 0 and left to right otherwise.
func (x *Executor) gradientPic(c *cmdqueue.GradientPicCmd) {
	x.set2D()
	x.useShader2D(x.shader(c.Shader))

	from, to := x.color2D, c.Gradient
	colors := [4][4]uint8{from, from, to, to}
	if c.GradientType != 0 {
		colors = [4][4]uint8{from, to, to, from}
	}
	x.quad2D(
		[4][2]float32{{c.X, c.Y}, {c.X + c.W, c.Y}, {c.X + c.W, c.Y + c.H}, {c.X, c.Y + c.H}},
		picST(c.S1, c.T1, c.S2, c.T2),
		colors,
	)
}

func (x *Executor) polys2D(polys []scene.Poly) {
	x.set2D()
	for i := range polys {
		p := &polys[i]
		x.useShader2D(x.shader(int32(p.Shader)))
		x.tess.Add((*surface.Poly)(p))
		x.stats.Pics2D++
	}
}
