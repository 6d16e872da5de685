// Package portal renders the remote views of portal and mirror surfaces.
//
// A portal surface is paired with a marker entity lying on its plane. The
// composer builds the nested view and re-enters the view renderer once;
// nested portals are never followed.
package portal

import (
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/surface"
	"github.com/Faultbox/ironsight/internal/engine/view"
	"github.com/Faultbox/ironsight/internal/logger"
	"github.com/Faultbox/ironsight/pkg/math"
)

// MaxDepth is the number of nested portal views allowed.
const MaxDepth = 1

// RenderFunc renders a complete view.
type RenderFunc func(v *view.View) error

// Stats counts composer decisions for one frame.
type Stats struct {
	Rendered  int
	Recursive int
	Offscreen int
	NoMarker  int
}

// Composer decides whether a portal surface gets a remote view and renders
// it.
type Composer struct {
	depth int
	tess  *surface.Tess
	stats Stats
	log   *zap.Logger
}

// NewComposer returns a composer with its own tessellation arena for the
// offscreen test.
func NewComposer() *Composer {
	return &Composer{
		tess: surface.NewTess(128, 384),
		log:  logger.Named("portal"),
	}
}

// Depth returns the number of portal views currently being rendered.
func (c *Composer) Depth() int { return c.depth }

// Stats returns the counters since the last ResetStats.
func (c *Composer) Stats() Stats { return c.stats }

// ResetStats clears the counters.
func (c *Composer) ResetStats() { c.stats = Stats{} }

// MirrorViewBySurface renders the remote view of s if it is visible and
// paired with a marker. It reports whether a view was rendered. The
// parent view is never modified.
func (c *Composer) MirrorViewBySurface(parent *view.View, s Surface, entities []scene.Entity, render RenderFunc) (bool, error) {
	if parent.IsPortal || c.depth >= MaxDepth {
		c.log.Debug("recursive mirror/portal found", zap.Int("depth", c.depth))
		c.stats.Recursive++
		return false, nil
	}
	if parent.Options.NoPortals || parent.Options.FastSky {
		return false, nil
	}
	if c.SurfaceIsOffscreen(parent, s, entities) {
		c.stats.Offscreen++
		return false, nil
	}

	p, ok := Orientations(parent, s, entities)
	if !ok {
		c.stats.NoMarker++
		return false, nil
	}

	nested := *parent
	nested.IsPortal = true
	nested.IsMirror = p.Mirror
	nested.Depth = parent.Depth + 1
	nested.PVSOrigin = p.PVSOrigin
	nested.DLights = nil
	nested.DLightBits = 0
	nested.ResetVisBounds()

	nested.Or.Origin = MirrorPoint(parent.Or.Origin, &p.Surface, &p.Camera)
	for i := 0; i < 3; i++ {
		nested.Or.Axis[i] = MirrorVector(parent.Or.Axis[i], &p.Surface, &p.Camera)
	}
	nested.PortalPlane.Normal = p.Camera.Axis[0].Negate()
	nested.PortalPlane.Dist = p.Camera.Origin.Dot(nested.PortalPlane.Normal)

	c.depth++
	defer func() { c.depth-- }()

	c.stats.Rendered++
	if err := render(&nested); err != nil {
		return false, err
	}
	return true, nil
}

// SurfaceIsOffscreen reports whether s is entirely outside the view,
// facing away, or farther than its portal range. Mirrors ignore range.
func (c *Composer) SurfaceIsOffscreen(v *view.View, s Surface, entities []scene.Entity) bool {
	t := c.tess
	t.Reset()
	t.Entity = s.Entity
	t.Add(s.Surf)
	if len(t.Verts) == 0 {
		return true
	}

	modelMatrix := v.World.ModelMatrix
	viewer := v.Or.Origin
	if s.Entity != nil && s.Entity.Type == scene.EntityModel {
		or := v.RotateForEntity(s.Entity)
		modelMatrix = or.ModelMatrix
		viewer = or.ViewOrigin
	}

	pointAnd := ^uint32(0)
	for i := range t.Verts {
		_, clip := view.TransformModelToClip(t.Verts[i].Pos, modelMatrix, v.ProjectionMatrix)
		var flags uint32
		for j := 0; j < 3; j++ {
			if clip[j] >= clip[3] {
				flags |= 1 << uint(j*2)
			} else if clip[j] <= -clip[3] {
				flags |= 1 << uint(j*2+1)
			}
		}
		pointAnd &= flags
	}
	if pointAnd != 0 {
		return true
	}

	fallback := surface.PlaneOf(s.Surf).Normal
	shortest := float32(1e30)
	front := len(t.Indexes) / 3
	for i := 0; i+2 < len(t.Indexes); i += 3 {
		vert := &t.Verts[t.Indexes[i]]
		toVert := vert.Pos.Sub(viewer)
		shortest = min(shortest, toVert.LengthSquared())

		n := vert.Normal
		if n == (math.Vec3{}) {
			n = fallback
		}
		if toVert.Dot(n) >= 0 {
			front--
		}
	}
	if front == 0 {
		return true
	}

	if IsMirror(v, s, entities) {
		return false
	}
	return s.Range > 0 && shortest > s.Range*s.Range
}
