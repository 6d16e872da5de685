package framebuffer

import (
	"testing"
)

func TestClip(t *testing.T) {
	tests := []struct {
		name         string
		x, y, w, h   int32
		wantX, wantY int32
		wantW, wantH int32
	}{
		{"inside", 10, 10, 20, 20, 10, 10, 20, 20},
		{"negative origin", -5, -5, 20, 20, 0, 0, 15, 15},
		{"past edge", 90, 40, 20, 20, 90, 40, 10, 10},
		{"outside", 200, 0, 10, 10, 200, 0, 0, 0},
		{"empty", 0, 0, 0, 5, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := clip(tt.x, tt.y, tt.w, tt.h, 100, 50)
			if x != tt.wantX || y != tt.wantY || w != tt.wantW || h != tt.wantH {
				t.Errorf("clip() = %d, %d, %d, %d, want %d, %d, %d, %d",
					x, y, w, h, tt.wantX, tt.wantY, tt.wantW, tt.wantH)
			}
		})
	}
}
