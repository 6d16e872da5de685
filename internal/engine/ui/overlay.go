package ui

import (
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/ironsight/internal/engine/renderer"
	"github.com/Faultbox/ironsight/internal/engine/view"
)

// Toggle is one boolean render option.
type Toggle struct {
	Label string
	Value *bool
}

// Toggles returns the boolean options of opts, bound to its fields.
func Toggles(opts *view.Options) []Toggle {
	return []Toggle{
		{"No culling", &opts.NoCull},
		{"No portals", &opts.NoPortals},
		{"Portal only", &opts.PortalOnly},
		{"Fast sky", &opts.FastSky},
		{"Draw sun", &opts.DrawSun},
		{"Flares", &opts.Flares},
		{"Dynamic lights", &opts.DynamicLight},
	}
}

// OptionsPanel draws controls for opts and reports whether any changed.
func OptionsPanel(opts *view.Options) bool {
	changed := false
	for _, t := range Toggles(opts) {
		if imgui.Checkbox(t.Label, t.Value) {
			changed = true
		}
	}

	lodBias := int32(opts.LODBias)
	if imgui.SliderIntV("LOD bias", &lodBias, 0, 3, "%d", imgui.SliderFlagsNone) {
		opts.LODBias = int(lodBias)
		changed = true
	}
	shadows := int32(opts.Shadows)
	if imgui.SliderIntV("Shadows", &shadows, 0, 2, "%d", imgui.SliderFlagsNone) {
		opts.Shadows = int(shadows)
		changed = true
	}
	if imgui.SliderFloatV("Z near", &opts.ZNear, 1, 16, "%.1f", imgui.SliderFlagsNone) {
		changed = true
	}
	return changed
}

// StatLines splits the stats text into display lines.
func StatLines(s renderer.Stats) []string {
	return strings.Split(strings.TrimRight(s.String(), "\n"), "\n")
}

// StatsPanel prints the stats of the last frame.
func StatsPanel(s renderer.Stats) {
	for _, line := range StatLines(s) {
		imgui.TextUnformatted(line)
	}
	if s.DrawSurfsDropped > 0 || s.Commands.Dropped > 0 {
		imgui.TextColored(imgui.NewVec4(1, 0.6, 0.2, 1), "frame dropped work")
	}
}
