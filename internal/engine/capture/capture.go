// Package capture writes captured frames to image files.
package capture

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/ironsight/internal/engine/cmdqueue"
	"github.com/Faultbox/ironsight/internal/logger"
)

// Writer saves frames read back from the device. It implements the back
// end's capture capability.
type Writer struct {
	outputDir string
	prefix    string
	last      string

	now func() time.Time
	log *zap.Logger
}

// NewWriter creates a writer saving into outputDir. Unnamed captures are
// named prefix plus a timestamp.
func NewWriter(outputDir, prefix string) *Writer {
	return &Writer{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
		log:       logger.Named("capture"),
	}
}

// SetOutputDir sets the output directory for captures.
func (w *Writer) SetOutputDir(dir string) {
	w.outputDir = dir
}

// Last returns the path of the most recent capture.
func (w *Writer) Last() string {
	return w.last
}

// ParseFormat maps a format name (png, bmp, webp) to a screenshot format.
func ParseFormat(name string) (int32, error) {
	switch strings.ToLower(name) {
	case "", "png":
		return cmdqueue.FormatPNG, nil
	case "bmp":
		return cmdqueue.FormatBMP, nil
	case "webp":
		return cmdqueue.FormatWebP, nil
	}
	return 0, fmt.Errorf("unknown capture format %q", name)
}

// Extension returns the file extension of a screenshot format.
func Extension(format int32) string {
	switch format {
	case cmdqueue.FormatBMP:
		return ".bmp"
	case cmdqueue.FormatWebP:
		return ".webp"
	default:
		return ".png"
	}
}

// Filename returns the path a capture called name would be written to.
func (w *Writer) Filename(name string, format int32) string {
	if name == "" {
		name = fmt.Sprintf("%s_%s", w.prefix, w.now().Format("2006-01-02_15-04-05.000"))
	}
	if filepath.Ext(name) == "" {
		name += Extension(format)
	}
	if w.outputDir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(w.outputDir, name)
	}
	return name
}

// Capture writes bottom-up RGBA pixels as an image file.
func (w *Writer) Capture(name string, format int32, width, height int, pix []byte) error {
	img, err := FromPixels(pix, width, height)
	if err != nil {
		return err
	}

	filename := w.Filename(name, format)
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := Encode(bw, format, img); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	w.last = filename
	w.log.Info("screenshot saved", zap.String("path", filename))
	return nil
}

// FromPixels copies bottom-up RGBA rows, as read back from the device,
// into a top-down image.
func FromPixels(pix []byte, width, height int) (*image.RGBA, error) {
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pix))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pix[src:src+rowSize])
	}
	return img, nil
}

// Encode writes img in a screenshot format.
func Encode(out io.Writer, format int32, img image.Image) error {
	var err error
	switch format {
	case cmdqueue.FormatPNG:
		err = png.Encode(out, img)
	case cmdqueue.FormatBMP:
		err = bmp.Encode(out, img)
	case cmdqueue.FormatWebP:
		err = nativewebp.Encode(out, img, nil)
	default:
		return fmt.Errorf("unknown capture format %d", format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", strings.TrimPrefix(Extension(format), "."), err)
	}
	return nil
}
