package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// tgaBytes builds an uncompressed 24-bit TGA of one color.
func tgaBytes(w, h int, c color.RGBA) []byte {
	hdr := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		byte(w), byte(w >> 8), byte(h), byte(h >> 8), 24, 0}
	for i := 0; i < w*h; i++ {
		hdr = append(hdr, c.B, c.G, c.R)
	}
	return hdr
}

func TestLoadTriesExtensions(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	fsys := fstest.MapFS{
		"textures/wall.png":  {Data: pngBytes(t, Solid(4, red))},
		"textures/floor.tga": {Data: tgaBytes(2, 2, color.RGBA{G: 255, A: 255})},
	}
	l := NewLoaderFS(fsys)

	img, err := l.Load("textures/wall")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Equal(t, red, img.RGBAAt(1, 1))

	img, err = l.Load("/textures/floor")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(1, 0))

	img, err = l.Load("textures/wall.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestLoadMissing(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{})
	_, err := l.Load("textures/none")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadBadData(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{"bad.png": {Data: []byte("not a png")}})
	_, err := l.Load("bad.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoadScalesToMaxSize(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{"big.png": {Data: pngBytes(t, Solid(64, color.RGBA{B: 255, A: 255}))}})
	l.MaxSize = 16
	img, err := l.Load("big")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}

func TestToRGBAMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 8))
	src.SetRGBA(5, 5, color.RGBA{R: 9, A: 255})
	dst := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 3), dst.Bounds())
	assert.Equal(t, uint8(9), dst.RGBAAt(0, 0).R)
}

func TestChecker(t *testing.T) {
	img := Checker(8, 4)
	assert.NotEqual(t, img.RGBAAt(0, 0), img.RGBAAt(4, 0))
	assert.Equal(t, img.RGBAAt(0, 0), img.RGBAAt(4, 4))
}

func TestLoadUnknownExtension(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{"a.gif": {Data: []byte("GIF89a")}})
	_, err := l.Load("a.gif")
	assert.ErrorIs(t, err, ErrFormat)
}
