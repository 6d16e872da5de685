package scene

import (
	"github.com/Faultbox/ironsight/internal/engine/asset"
	"github.com/Faultbox/ironsight/pkg/math"
)

// EntityType selects how an entity is drawn.
type EntityType int

const (
	EntityModel EntityType = iota
	EntitySprite
	EntityBeam
	EntityRailCore
	EntityLightning
	EntityPortalSurface
	EntitySplash
	numEntityTypes
)

func (t EntityType) String() string {
	switch t {
	case EntityModel:
		return "model"
	case EntitySprite:
		return "sprite"
	case EntityBeam:
		return "beam"
	case EntityRailCore:
		return "railcore"
	case EntityLightning:
		return "lightning"
	case EntityPortalSurface:
		return "portalsurface"
	case EntitySplash:
		return "splash"
	default:
		return "invalid"
	}
}

// RenderFX are per-entity render flags.
type RenderFX uint32

const (
	// FirstPerson entities are only drawn in the primary view (view weapons).
	FirstPerson RenderFX = 1 << iota
	// ThirdPerson entities are only drawn in portal and mirror views (the player body).
	ThirdPerson
	// DepthHack squeezes the entity into the front of the depth range.
	DepthHack
	NoShadow
	// ForceNoLOD pins the entity to its highest detail level.
	ForceNoLOD
	// WrapFrames makes out of range animation frames wrap instead of clamp.
	WrapFrames
	ShadowPlane
	// OrientLOD shrinks the radius used for LOD selection, for long thin models.
	OrientLOD
)

// Entity is one submitted renderable. It is owned by the frame that recorded it.
type Entity struct {
	Type EntityType
	FX   RenderFX

	Model        asset.ModelHandle
	CustomShader asset.ShaderHandle
	CustomSkin   asset.SkinHandle
	SkinNum      int

	Frame    int
	OldFrame int
	BackLerp float32

	Origin    math.Vec3
	OldOrigin math.Vec3 // beam end, or portal camera position
	Axis      math.Axis

	// NonNormalizedAxes is set when Axis carries a scale.
	NonNormalizedAxes bool

	Radius   float32 // sprites and beams
	Rotation float32 // sprite roll in degrees

	ShaderRGBA [4]uint8
	ShaderTime float32
}

// DLightFlags modify how a dynamic light is culled and recorded.
type DLightFlags uint32

const (
	// Directed lights are ambient and never frustum culled.
	Directed DLightFlags = 1 << iota
	// Force keeps the light even when dynamic lights are disabled.
	Force
)

// DLight is a transient point light.
type DLight struct {
	Origin    math.Vec3
	Radius    float32
	Intensity float32
	Color     math.Vec3
	Shader    asset.ShaderHandle
	Flags     DLightFlags

	// Transformed is Origin expressed in the orientation currently being
	// drawn. It is rewritten whenever the entity changes.
	Transformed math.Vec3
}

// PolyVert is one vertex of a submitted polygon.
type PolyVert struct {
	Pos   math.Vec3
	ST    [2]float32
	Color [4]uint8
}

// Poly is a convex polygon submitted by the game (marks, particles).
type Poly struct {
	Shader   asset.ShaderHandle
	Verts    []PolyVert
	FogIndex int
}

// RDFlags are per-scene flags.
type RDFlags uint32

const (
	// NoWorldModel scenes draw only their entities (menus, HUD models).
	NoWorldModel RDFlags = 1 << iota
	Hyperspace
	SkyboxPortal
)

// RefDef describes one scene's camera and viewport. Y is measured from the
// top of the screen.
type RefDef struct {
	X, Y          int
	Width, Height int
	FovX, FovY    float32

	ViewOrigin math.Vec3
	ViewAxis   math.Axis

	Time  int // milliseconds
	Flags RDFlags
}
