package scene

// Limits bound per-frame submissions.
type Limits struct {
	MaxPolys     int
	MaxPolyVerts int
}

// DefaultLimits returns the stock poly budget.
func DefaultLimits() Limits {
	return Limits{MaxPolys: 600, MaxPolyVerts: 3000}
}

const (
	// MaxEntities per frame. The next index is reserved for the world in
	// draw-surface sort keys.
	MaxEntities = 2047
	// MaxDLights per frame.
	MaxDLights = 32
)

// Frame holds everything submitted during one frame. Slices are reused
// across frames; PolyVerts is allocated at full capacity up front so the
// Verts slices of recorded polys never move.
type Frame struct {
	Entities  []Entity
	DLights   []DLight
	Polys     []Poly
	PolyVerts []PolyVert
}

// NewFrame allocates frame storage for the given limits.
func NewFrame(limits Limits) *Frame {
	return &Frame{
		Entities:  make([]Entity, 0, MaxEntities),
		DLights:   make([]DLight, 0, MaxDLights),
		Polys:     make([]Poly, 0, limits.MaxPolys),
		PolyVerts: make([]PolyVert, 0, limits.MaxPolyVerts),
	}
}

// Reset empties the frame, keeping its storage.
func (f *Frame) Reset() {
	f.Entities = f.Entities[:0]
	f.DLights = f.DLights[:0]
	f.Polys = f.Polys[:0]
	f.PolyVerts = f.PolyVerts[:0]
}

// Scene is the slice of a frame belonging to one RenderScene call.
type Scene struct {
	Entities []Entity
	DLights  []DLight
	Polys    []Poly
}
