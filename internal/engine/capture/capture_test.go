package capture

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/ironsight/internal/engine/cmdqueue"
)

// pixels returns a bottom-up 2x2 image whose bottom row is red and top row
// is blue.
func pixels() []byte {
	return []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
}

func TestFromPixelsFlipsRows(t *testing.T) {
	img, err := FromPixels(pixels(), 2, 2)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b, "top row comes from the last device row")

	r, _, _, _ = img.At(1, 1).RGBA()
	assert.NotZero(t, r)
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	_, err := FromPixels(make([]byte, 7), 2, 2)
	assert.Error(t, err)
}

func TestCaptureWritesFormats(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "shot")

	tests := []struct {
		name   string
		format int32
		check  func(t *testing.T, data []byte)
	}{
		{"a", cmdqueue.FormatPNG, func(t *testing.T, data []byte) {
			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 2, img.Bounds().Dx())
		}},
		{"b", cmdqueue.FormatBMP, func(t *testing.T, data []byte) {
			img, err := bmp.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 2, img.Bounds().Dy())
		}},
		{"c", cmdqueue.FormatWebP, func(t *testing.T, data []byte) {
			require.Greater(t, len(data), 12)
			assert.Equal(t, "RIFF", string(data[:4]))
			assert.Equal(t, "WEBP", string(data[8:12]))
		}},
	}
	for _, tt := range tests {
		t.Run(Extension(tt.format), func(t *testing.T) {
			require.NoError(t, w.Capture(tt.name, tt.format, 2, 2, pixels()))
			want := filepath.Join(dir, tt.name+Extension(tt.format))
			assert.Equal(t, want, w.Last())

			data, err := os.ReadFile(want)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestFilenameDefaults(t *testing.T) {
	w := NewWriter("out", "shot")
	w.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	assert.Equal(t, filepath.Join("out", "shot_2024-05-01_12-30-00.000.png"), w.Filename("", cmdqueue.FormatPNG))
	assert.Equal(t, filepath.Join("out", "x.webp"), w.Filename("x", cmdqueue.FormatWebP))
	assert.Equal(t, filepath.Join("out", "x.jpg"), w.Filename("x.jpg", cmdqueue.FormatPNG))
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]int32{
		"":     cmdqueue.FormatPNG,
		"PNG":  cmdqueue.FormatPNG,
		"bmp":  cmdqueue.FormatBMP,
		"webp": cmdqueue.FormatWebP,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)
}
