package gldevice

import (
	"errors"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/internal/engine/fog"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/texture"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/pkg/math"
)

var whiteRGBA = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// noClip keeps every vertex: dot(eye, noClip) is always 1.
var noClip = [4]float32{0, 0, 0, 1}

// Fog modes understood by the fragment program.
const (
	fogOff int32 = iota
	fogLinear
	fogExp
)

// Draw renders the batch in t.
func (d *Device) Draw(t *surface.Tess) {
	if t.Shader == nil || len(t.Indexes) == 0 {
		return
	}
	sh := t.Shader

	d.prog.Use()
	d.applyState(sh)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture(sh.Image))

	c := sh.Color
	if c == ([4]float32{}) {
		c = [4]float32{1, 1, 1, 1}
	}
	gl.Uniform4f(d.prog.Uniform("uColor"), c[0], c[1], c[2], c[3])
	alphaRef := float32(0)
	if sh.Sort == asset.SortSeeThrough {
		alphaRef = 0.5
	}
	gl.Uniform1f(d.prog.Uniform("uAlphaRef"), alphaRef)

	d.setFog()
	if t.Dlighted && !d.twoD {
		d.setLights(t.DLights)
	} else {
		gl.Uniform1i(d.prog.Uniform("uNumLights"), 0)
	}

	d.verts = packVertices(d.verts[:0], t.Verts)
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.verts)*int(vertexStride), gl.Ptr(d.verts), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(t.Indexes)*4, gl.Ptr(t.Indexes), gl.STREAM_DRAW)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(t.Indexes)), gl.UNSIGNED_INT, 0)
}

// applyState sets culling, blending and depth state for sh.
func (d *Device) applyState(sh *asset.Shader) {
	mirror := d.view != nil && d.view.IsMirror && !d.twoD
	if face, ok := cullFace(sh.Cull, mirror); ok && !d.twoD {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(face)
		// world polygons wind clockwise seen from the front
		gl.FrontFace(gl.CW)
	} else {
		gl.Disable(gl.CULL_FACE)
	}

	if blended(sh) || d.twoD {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
	} else {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}

	if d.twoD {
		gl.Disable(gl.DEPTH_TEST)
	} else {
		gl.Enable(gl.DEPTH_TEST)
	}

	if sh.PolygonOffset {
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(-1, -2)
	} else {
		gl.Disable(gl.POLYGON_OFFSET_FILL)
	}
}

// cullFace returns the GL face to discard for a cull type. A mirror view
// flips handedness, so the discarded face swaps. ok is false for two-sided
// shaders.
func cullFace(c asset.CullType, mirror bool) (face uint32, ok bool) {
	if c != asset.CullFront && c != asset.CullBack {
		return 0, false
	}
	front := c == asset.CullBack
	if mirror {
		front = !front
	}
	if front {
		return gl.FRONT, true
	}
	return gl.BACK, true
}

func blended(sh *asset.Shader) bool {
	return sh.Sort >= asset.SortBanner || (sh.Color[3] > 0 && sh.Color[3] < 1)
}

func (d *Device) setFog() {
	mode, p := fogOff, fog.Params{}
	if d.view != nil && !d.twoD {
		mode, p = fogUniforms(d.view.Fog)
	}
	gl.Uniform1i(d.prog.Uniform("uFogMode"), mode)
	if mode == fogOff {
		return
	}
	gl.Uniform3f(d.prog.Uniform("uFogColor"), p.Color[0], p.Color[1], p.Color[2])
	gl.Uniform1f(d.prog.Uniform("uFogStart"), p.Start)
	gl.Uniform1f(d.prog.Uniform("uFogEnd"), p.End)
	gl.Uniform1f(d.prog.Uniform("uFogDensity"), p.Density)
}

// fogUniforms picks the program's fog mode for view fog p.
func fogUniforms(p fog.Params) (int32, fog.Params) {
	if !p.Registered {
		return fogOff, p
	}
	if p.Mode == fog.Linear {
		if p.End <= p.Start {
			return fogOff, p
		}
		return fogLinear, p
	}
	if p.Density <= 0 {
		return fogOff, p
	}
	return fogExp, p
}

func (d *Device) setLights(lights []scene.DLight) {
	var l lightUniforms
	l.fill(lights)
	gl.Uniform1i(d.prog.Uniform("uNumLights"), l.n)
	if l.n == 0 {
		return
	}
	gl.Uniform3fv(d.prog.Uniform("uLightPos"), l.n, &l.pos[0][0])
	gl.Uniform3fv(d.prog.Uniform("uLightColor"), l.n, &l.color[0][0])
	gl.Uniform1fv(d.prog.Uniform("uLightRadius"), l.n, &l.radius[0])
}

type lightUniforms struct {
	n      int32
	pos    [MaxLights][3]float32
	color  [MaxLights][3]float32
	radius [MaxLights]float32
}

// fill takes the first MaxLights lights. Positions are the lights'
// Transformed origins, in the space of the geometry being drawn.
func (l *lightUniforms) fill(lights []scene.DLight) {
	for _, dl := range lights {
		if int(l.n) == MaxLights {
			return
		}
		i := l.n
		l.pos[i] = dl.Transformed.Array()
		intensity := dl.Intensity
		if intensity <= 0 {
			intensity = 1
		}
		l.color[i] = dl.Color.Scale(intensity).Array()
		l.radius[i] = dl.Radius
		if dl.Flags&scene.Directed != 0 {
			l.radius[i] = -1
		}
		l.n++
	}
}

// EyeClipPlane converts a world plane to the eye-space plane the vertex
// program clips against for a camera at or. Points in front of the world
// plane get a positive clip distance.
func EyeClipPlane(or view.Orientation, p math.Plane) [4]float32 {
	q := [4]float32{
		p.Normal.Dot(or.Axis[0]),
		p.Normal.Dot(or.Axis[1]),
		p.Normal.Dot(or.Axis[2]),
		p.Normal.Dot(or.Origin) - p.Dist,
	}
	// eye x is -left, eye y is up, eye z is -forward
	return [4]float32{-q[1], q[2], -q[0], q[3]}
}

func (d *Device) setClipPlane(p [4]float32) {
	d.prog.Use()
	gl.Uniform4f(d.prog.Uniform("uClipPlane"), p[0], p[1], p[2], p[3])
}

func packVertices(dst []vertex, src []surface.Vertex) []vertex {
	for _, v := range src {
		dst = append(dst, vertex{Pos: v.Pos.Array(), ST: v.ST, Color: v.Color})
	}
	return dst
}

// drawQuad covers the viewport with one untextured color, in clip space.
func (d *Device) drawQuad(c [4]uint8) {
	d.verts = append(d.verts[:0],
		vertex{Pos: [3]float32{-1, -1, 0}, Color: c},
		vertex{Pos: [3]float32{1, -1, 0}, Color: c},
		vertex{Pos: [3]float32{1, 1, 0}, Color: c},
		vertex{Pos: [3]float32{-1, 1, 0}, Color: c},
	)
	indexes := []uint32{0, 1, 2, 0, 2, 3}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.white)
	gl.Uniform4f(d.prog.Uniform("uColor"), 1, 1, 1, 1)
	gl.Uniform1f(d.prog.Uniform("uAlphaRef"), 0)
	gl.Uniform1i(d.prog.Uniform("uFogMode"), fogOff)
	gl.Uniform1i(d.prog.Uniform("uNumLights"), 0)

	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.verts)*int(vertexStride), gl.Ptr(d.verts), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indexes)*4, gl.Ptr(indexes), gl.STREAM_DRAW)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(indexes)), gl.UNSIGNED_INT, 0)
}

// texture returns the GL texture for a shader image, loading it on first
// use. Images that fail to load are drawn with the checker pattern.
func (d *Device) texture(name string) uint32 {
	if name == "" || d.cfg.Textures == nil {
		return d.white
	}
	if tex, ok := d.textures[name]; ok {
		return tex
	}
	img, err := d.cfg.Textures.Load(name)
	if err != nil {
		if errors.Is(err, texture.ErrNotFound) {
			d.log.Warn("missing texture", zap.String("image", name))
		} else {
			d.log.Warn("bad texture", zap.String("image", name), zap.Error(err))
		}
		d.textures[name] = d.missing
		return d.missing
	}
	tex := upload(img)
	d.textures[name] = tex
	return tex
}

func upload(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	b := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return tex
}
