package renderer

import (
	"github.com/Faultbox/ironsight/internal/config"
	"github.com/Faultbox/ironsight/internal/engine/scene"
	"github.com/Faultbox/ironsight/internal/engine/view"
)

// OptionsFromConfig converts the render section of the client
// configuration into view options.
func OptionsFromConfig(rc config.RenderConfig) view.Options {
	opts := view.DefaultOptions()
	opts.NoCull = rc.NoCull
	opts.NoPortals = rc.NoPortals
	opts.PortalOnly = rc.PortalOnly
	opts.FastSky = rc.FastSky
	opts.DrawSun = rc.DrawSun
	opts.Flares = rc.Flares
	opts.FlareFade = rc.FlareFade
	opts.DynamicLight = rc.DynamicLight
	opts.Shadows = rc.Shadows
	opts.LODBias = rc.LODBias
	opts.LODScale = rc.LODScale
	opts.ZFar = rc.ZFar
	if rc.ZNear > 0 {
		opts.ZNear = rc.ZNear
	}
	return opts
}

// ConfigFromSettings builds a renderer configuration from the client
// configuration.
func ConfigFromSettings(cfg *config.Config) Config {
	c := DefaultConfig()
	c.Width = cfg.Graphics.Width
	c.Height = cfg.Graphics.Height
	c.Options = OptionsFromConfig(cfg.Render)
	if cfg.Render.CommandBuffer > 0 {
		c.CommandBuffer = cfg.Render.CommandBuffer << 10
	}
	if cfg.Render.MaxDrawSurfs > 0 {
		c.MaxDrawSurfs = cfg.Render.MaxDrawSurfs
	}
	if cfg.Render.MaxPolys > 0 && cfg.Render.MaxPolyVerts > 0 {
		c.Limits = scene.Limits{MaxPolys: cfg.Render.MaxPolys, MaxPolyVerts: cfg.Render.MaxPolyVerts}
	}
	return c
}
