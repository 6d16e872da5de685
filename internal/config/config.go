// Package config handles client configuration loading and management.
package config

import "time"

// Config holds all client settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Render   RenderConfig   `yaml:"render" toml:"render"`
	Capture  CaptureConfig  `yaml:"capture" toml:"capture"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	Fullscreen bool    `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool    `yaml:"vsync" toml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit" toml:"fps_limit"`
	FOV        float32 `yaml:"fov" toml:"fov"`

	// TextureDir is searched for shader images.
	TextureDir     string `yaml:"texture_dir" toml:"texture_dir"`
	MaxTextureSize int    `yaml:"max_texture_size" toml:"max_texture_size"`
	Multisample    int    `yaml:"multisample" toml:"multisample"`
}

// RenderConfig holds renderer quality and debug toggles. These are the
// values that get stamped into every view; nothing in the pipeline reads
// them globally.
type RenderConfig struct {
	NoCull        bool    `yaml:"nocull" toml:"nocull"`
	NoPortals     bool    `yaml:"noportals" toml:"noportals"`
	PortalOnly    bool    `yaml:"portal_only" toml:"portal_only"`
	FastSky       bool    `yaml:"fastsky" toml:"fastsky"`
	DrawSun       bool    `yaml:"draw_sun" toml:"draw_sun"`
	Flares        bool    `yaml:"flares" toml:"flares"`
	FlareFade     float32 `yaml:"flare_fade" toml:"flare_fade"`
	DynamicLight  bool    `yaml:"dynamic_light" toml:"dynamic_light"`
	Shadows       int     `yaml:"shadows" toml:"shadows"`
	LODBias       int     `yaml:"lod_bias" toml:"lod_bias"`
	LODScale      float32 `yaml:"lod_scale" toml:"lod_scale"`
	ZFar          float32 `yaml:"zfar" toml:"zfar"`
	ZNear         float32 `yaml:"znear" toml:"znear"`
	CommandBuffer int     `yaml:"command_buffer_kb" toml:"command_buffer_kb"`
	MaxPolys      int     `yaml:"max_polys" toml:"max_polys"`
	MaxPolyVerts  int     `yaml:"max_poly_verts" toml:"max_poly_verts"`
	MaxDrawSurfs  int     `yaml:"max_draw_surfs" toml:"max_draw_surfs"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir" toml:"dir"`
	Format string `yaml:"format" toml:"format"` // png, bmp or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// WatchDebounce is how long Watch waits for writes to settle before reloading.
const WatchDebounce = 100 * time.Millisecond

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        90,

			TextureDir:     "baseq3",
			MaxTextureSize: 2048,
		},
		Render: RenderConfig{
			DrawSun:       true,
			Flares:        true,
			FlareFade:     7,
			DynamicLight:  true,
			Shadows:       0,
			LODBias:       0,
			LODScale:      5,
			ZNear:         4,
			CommandBuffer: 256,
			MaxPolys:      600,
			MaxPolyVerts:  3000,
			MaxDrawSurfs:  0x20000,
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
