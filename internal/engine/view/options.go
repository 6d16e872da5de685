package view

// Options are the quality and debug toggles a view is rendered with. They
// are copied into every View so nothing on the hot path reads globals.
type Options struct {
	NoCull     bool // classify everything as clipped
	NoPortals  bool
	PortalOnly bool // render only the portal view, for debugging mirrors
	FastSky    bool

	DrawSun      bool
	Flares       bool
	FlareFade    float32
	FlareSize    float32
	DynamicLight bool
	Shadows      int

	LODBias  int
	LODScale float32

	ZNear float32
	ZFar  float32 // overrides the computed far clip when non-zero
}

// DefaultOptions returns the stock settings.
func DefaultOptions() Options {
	return Options{
		DrawSun:      true,
		Flares:       true,
		FlareFade:    7,
		FlareSize:    40,
		DynamicLight: true,
		LODScale:     5,
		ZNear:        4,
	}
}
