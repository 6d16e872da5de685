package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/ironsight/internal/engine/renderer"
	"github.com/Faultbox/ironsight/internal/engine/view"
)

func TestTogglesBindOptions(t *testing.T) {
	opts := view.DefaultOptions()
	toggles := Toggles(&opts)

	byLabel := make(map[string]*bool)
	for _, tg := range toggles {
		byLabel[tg.Label] = tg.Value
	}

	*byLabel["No culling"] = true
	*byLabel["Flares"] = false
	assert.True(t, opts.NoCull)
	assert.False(t, opts.Flares)
	assert.Len(t, byLabel, len(toggles), "labels are unique")
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h, aw, ah float32
		wantW, wantH float32
	}{
		{"wide area", 640, 480, 1000, 480, 640, 480},
		{"tall area", 640, 480, 320, 1000, 320, 240},
		{"upscale", 100, 50, 400, 400, 400, 200},
		{"empty", 0, 50, 400, 400, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Fit(tt.w, tt.h, tt.aw, tt.ah)
			assert.InDelta(t, tt.wantW, w, 1e-3)
			assert.InDelta(t, tt.wantH, h, 1e-3)
		})
	}
}

func TestStatLines(t *testing.T) {
	lines := StatLines(renderer.Stats{Frame: 7, DrawSurfs: 12})
	assert.Greater(t, len(lines), 1)
	assert.Contains(t, lines[0], "frame:7")
	for _, l := range lines {
		assert.NotContains(t, l, "\n")
	}
}
