// Package texture loads the images shaders name into RGBA pixels ready for
// upload. Names may omit the extension; the usual ones are tried in order.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// Extensions tried, in order, for names without one.
var Extensions = []string{".tga", ".jpg", ".png", ".webp", ".bmp"}

// TGA has no magic number, so decoders are picked by extension rather
// than by sniffing.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".tga":  tga.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".png":  png.Decode,
	".webp": webp.Decode,
	".bmp":  bmp.Decode,
}

var (
	// ErrNotFound is returned when no file matches a name.
	ErrNotFound = errors.New("texture not found")
	// ErrFormat is returned for extensions no decoder handles.
	ErrFormat = errors.New("unsupported image format")
)

// Loader reads images from a file system.
type Loader struct {
	fsys fs.FS

	// MaxSize clamps both dimensions; larger images are scaled down.
	// Zero means no limit.
	MaxSize int
}

// NewLoader returns a loader reading below dir.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir)}
}

// NewLoaderFS returns a loader reading from fsys.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load decodes the image called name.
func (l *Loader) Load(name string) (*image.RGBA, error) {
	name = path.Clean(filepath.ToSlash(strings.TrimPrefix(name, "/")))

	candidates := []string{name}
	if path.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range Extensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, c := range candidates {
		decode, ok := decoders[strings.ToLower(path.Ext(c))]
		if !ok {
			return nil, fmt.Errorf("%s: %w", c, ErrFormat)
		}
		f, err := l.fsys.Open(c)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", c, err)
		}
		img, err := decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", c, err)
		}
		return l.fit(ToRGBA(img)), nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

func (l *Loader) fit(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if l.MaxSize <= 0 || (w <= l.MaxSize && h <= l.MaxSize) {
		return img
	}
	for w > l.MaxSize || h > l.MaxSize {
		w, h = max(w/2, 1), max(h/2, 1)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// ToRGBA converts any image to *image.RGBA with its origin at zero.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Solid returns a size x size image of one color.
func Solid(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Checker returns the image missing textures are drawn with.
func Checker(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	dark := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	light := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
