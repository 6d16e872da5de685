// Package asset holds the read-only material, model and skin descriptors the
// renderer resolves handles against. Loading and decoding live elsewhere;
// during a frame nothing in the renderer mutates a cache.
package asset

// ShaderHandle identifies a registered shader. Zero is the default shader.
type ShaderHandle int

// SortClass orders shaders coarsely: portals first, then opaque geometry,
// then blended layers, nearest last.
type SortClass int

const (
	SortBad SortClass = iota
	SortPortal
	SortEnvironment
	SortOpaque
	SortDecal
	SortSeeThrough
	SortBanner
	SortFog
	SortUnderwater
	SortBlend0
	SortBlend1
	SortBlend2
	SortBlend3
	SortBlend6
	SortStencilShadow
	SortAlmostNearest
	SortNearest
)

var sortClassNames = [...]string{
	"bad", "portal", "environment", "opaque", "decal", "seethrough", "banner",
	"fog", "underwater", "blend0", "blend1", "blend2", "blend3", "blend6",
	"stencilshadow", "almostnearest", "nearest",
}

func (s SortClass) String() string {
	if s < 0 || int(s) >= len(sortClassNames) {
		return "unknown"
	}
	return sortClassNames[s]
}

// CullType selects which faces of a surface are discarded.
type CullType int

const (
	CullFront CullType = iota // draw front faces only
	CullBack
	CullNone // two-sided
)

// MaxShaders is bounded by the shader field of a draw-surface sort key.
const MaxShaders = 1 << 14

// Shader describes a material as the renderer needs it for ordering and
// batching. Stage programs are the device's business.
type Shader struct {
	Name        string
	Index       int
	SortedIndex int
	Sort        SortClass
	Cull        CullType

	// EntityMergable shaders may batch surfaces from different entities
	// (smoke puffs, blood sprites).
	EntityMergable bool
	IsDefault      bool
	IsSky          bool
	PolygonOffset  bool

	// EntityColor shaders take model vertex colors from the entity's
	// ShaderRGBA. Others draw models white.
	EntityColor bool

	// PortalRange is the distance past which a portal surface stops
	// rendering its remote view.
	PortalRange float32

	Image string
	Color [4]float32
}
