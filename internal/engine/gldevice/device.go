// Package gldevice executes batches with OpenGL 4.1 core. It streams each
// batch into one vertex buffer and draws it with a single generic program
// that handles texturing, dynamic lights, fog and the portal clip plane.
package gldevice

import (
	"errors"
	"fmt"
	"strconv"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/engine/backend"
	"github.com/Faultbox/ironsight/internal/engine/framebuffer"
	"github.com/Faultbox/ironsight/internal/engine/shader"
	"github.com/Faultbox/ironsight/internal/engine/texture"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/internal/logger"
	"github.com/Faultbox/ironsight/pkg/math"
)

// Config describes the surface the device draws on.
type Config struct {
	Width, Height int

	// Textures loads shader images. Nil draws every shader untextured.
	Textures *texture.Loader

	// Swap presents the window. Nil when drawing offscreen.
	Swap func()

	// Target is drawn into instead of the window when set.
	Target *framebuffer.Framebuffer
}

// vertex is the GPU layout of surface.Vertex.
type vertex struct {
	Pos   [3]float32
	ST    [2]float32
	Color [4]uint8
}

const vertexStride = int32(unsafe.Sizeof(vertex{}))

var _ backend.Device = (*Device)(nil)

// Device implements backend.Device on the current GL context.
type Device struct {
	cfg  Config
	prog *shader.Program

	vao, vbo, ebo uint32
	verts         []vertex

	textures map[string]uint32
	white    uint32
	missing  uint32

	modelView  math.Mat4
	projection math.Mat4
	view       *view.View
	twoD       bool

	log *zap.Logger
}

// New initializes GL on the current context and builds the device's
// program and buffers.
func New(cfg Config) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	d := &Device{
		cfg:        cfg,
		textures:   make(map[string]uint32),
		modelView:  math.Identity(),
		projection: math.Identity(),
		log:        logger.Named("gldevice"),
	}
	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	prog, err := shader.New("generic", vertexSrc, fragmentSrc, "MAX_LIGHTS "+strconv.Itoa(MaxLights))
	if err != nil {
		return nil, err
	}
	d.prog = prog

	d.initBuffers()
	d.white = upload(texture.Solid(1, whiteRGBA))
	d.missing = upload(texture.Checker(64, 8))

	d.prog.Use()
	gl.Uniform1i(d.prog.Uniform("uTexture"), 0)
	d.setClipPlane(noClip)
	return d, nil
}

func (d *Device) initBuffers() {
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.GenBuffers(1, &d.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride, 12)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, vertexStride, 20)
}

// Resize records the new window size.
func (d *Device) Resize(width, height int) {
	d.cfg.Width, d.cfg.Height = width, height
	if d.cfg.Target != nil {
		d.cfg.Target.Resize(int32(width), int32(height))
	}
}

// SetTarget switches drawing to fb, or to the window when fb is nil.
func (d *Device) SetTarget(fb *framebuffer.Framebuffer) {
	d.cfg.Target = fb
}

// Destroy releases the device's GL objects.
func (d *Device) Destroy() {
	for _, tex := range d.textures {
		if tex != d.missing {
			gl.DeleteTextures(1, &tex)
		}
	}
	clear(d.textures)
	gl.DeleteTextures(1, &d.white)
	gl.DeleteTextures(1, &d.missing)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteBuffers(1, &d.ebo)
	gl.DeleteVertexArrays(1, &d.vao)
	d.prog.Delete()
}

// BeginView sets the viewport, projection and clip plane of a 3D pass and
// clears depth.
func (d *Device) BeginView(v *view.View) {
	d.view = v
	d.twoD = false

	gl.Viewport(int32(v.ViewportX), int32(v.ViewportY), int32(v.ViewportWidth), int32(v.ViewportHeight))
	gl.Scissor(int32(v.ViewportX), int32(v.ViewportY), int32(v.ViewportWidth), int32(v.ViewportHeight))
	gl.DepthRange(0, 1)
	gl.DepthMask(true)

	mask := uint32(gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	if v.Fog.Registered && v.Fog.ClearScreen {
		gl.ClearColor(v.Fog.Color[0], v.Fog.Color[1], v.Fog.Color[2], 1)
		mask |= gl.COLOR_BUFFER_BIT
	} else if v.Options.FastSky {
		gl.ClearColor(0, 0, 0, 1)
		mask |= gl.COLOR_BUFFER_BIT
	}
	gl.Clear(mask)

	d.SetProjection(v.ProjectionMatrix)
	if v.IsPortal {
		d.setClipPlane(EyeClipPlane(v.Or, v.PortalPlane))
	} else {
		d.setClipPlane(noClip)
	}
}

// SetModelView loads the model-view matrix for following draws.
func (d *Device) SetModelView(m math.Mat4) {
	d.modelView = m
	d.prog.Use()
	gl.UniformMatrix4fv(d.prog.Uniform("uModelView"), 1, false, d.modelView.Ptr())
}

// SetProjection loads the projection matrix for following draws.
func (d *Device) SetProjection(m math.Mat4) {
	d.projection = m
	d.prog.Use()
	gl.UniformMatrix4fv(d.prog.Uniform("uProjection"), 1, false, d.projection.Ptr())
}

// SetDepthRange maps window depth to [near, far].
func (d *Device) SetDepthRange(near, far float32) {
	gl.DepthRange(float64(near), float64(far))
}

// Set2D switches to a top-left pixel projection over the whole window.
func (d *Device) Set2D(width, height int) {
	d.twoD = true
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Scissor(0, 0, int32(width), int32(height))
	gl.DepthRange(0, 1)
	d.SetProjection(math.Ortho(0, float32(width), float32(height), 0, 0, 1))
	d.SetModelView(math.Identity())
	d.setClipPlane(noClip)
}

// ShadowFinish darkens every pixel the stencil shadow volumes marked.
func (d *Device) ShadowFinish() {
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilFunc(gl.NOTEQUAL, 0, 0xff)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.KEEP)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.DST_COLOR, gl.ZERO)

	saved, savedProj := d.modelView, d.projection
	d.SetModelView(math.Identity())
	d.SetProjection(math.Identity())
	d.drawQuad([4]uint8{153, 153, 153, 255})
	d.SetModelView(saved)
	d.SetProjection(savedProj)

	gl.Disable(gl.STENCIL_TEST)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// DrawBuffer starts a frame: it selects and clears the buffer the frame is
// drawn into and enables the device's GL state.
func (d *Device) DrawBuffer(buffer int) {
	if d.cfg.Target != nil {
		d.cfg.Target.Bind()
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		if buffer == 1 {
			gl.DrawBuffer(gl.FRONT)
		} else {
			gl.DrawBuffer(gl.BACK)
		}
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Enable(gl.CLIP_DISTANCE0)

	gl.Viewport(0, 0, int32(d.cfg.Width), int32(d.cfg.Height))
	gl.Scissor(0, 0, int32(d.cfg.Width), int32(d.cfg.Height))
	gl.DepthMask(true)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// SwapBuffers ends the frame and presents the window. The GL state the
// frame enabled is reset, so other code can share the context.
func (d *Device) SwapBuffers() {
	gl.Disable(gl.CLIP_DISTANCE0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.DepthMask(true)
	gl.DepthRange(0, 1)

	if d.cfg.Target != nil {
		d.cfg.Target.Unbind()
	}
	if d.cfg.Swap != nil {
		d.cfg.Swap()
	}
}

// ReadDepth returns the depth value at a window pixel.
func (d *Device) ReadDepth(x, y int) float32 {
	if d.cfg.Target != nil {
		return d.cfg.Target.ReadDepth(int32(x), int32(y))
	}
	var depth float32
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.DEPTH_COMPONENT, gl.FLOAT, gl.Ptr(&depth))
	return depth
}

var (
	errEmptyRect   = errors.New("empty read rectangle")
	errOutsideRect = errors.New("read rectangle outside target")
)

// ReadPixels returns RGBA rows of a window rectangle, bottom row first.
func (d *Device) ReadPixels(x, y, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("reading %dx%d: %w", width, height, errEmptyRect)
	}
	if d.cfg.Target != nil {
		pix := d.cfg.Target.ReadPixels(int32(x), int32(y), int32(width), int32(height))
		if len(pix) != width*height*4 {
			return nil, fmt.Errorf("reading %dx%d at %d,%d: %w", width, height, x, y, errOutsideRect)
		}
		return pix, nil
	}
	pix := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, fmt.Errorf("glReadPixels: error 0x%x", code)
	}
	return pix, nil
}

// Finish waits for the GPU to complete all submitted work.
func (d *Device) Finish() {
	gl.Finish()
}
