// Package assets loads the optional background panorama.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orbits/internal/scene"
)

// ErrNoPath is returned when no background file is configured.
var ErrNoPath = errors.New("no background path")

// Backdrop resolution caps. Images are sampled down to at most this size.
const (
	MaxWidth  = 256
	MaxHeight = 128
)

// BackgroundLoadedMsg carries the result of LoadBackgroundCmd.
type BackgroundLoadedMsg struct {
	Path     string
	Backdrop *scene.Backdrop
	Err      error
}

// LoadBackgroundCmd decodes the image at path off the UI goroutine.
func LoadBackgroundCmd(path string) tea.Cmd {
	return func() tea.Msg {
		b, err := LoadBackground(path)
		return BackgroundLoadedMsg{Path: path, Backdrop: b, Err: err}
	}
}

// LoadBackground reads a PNG, JPEG or GIF file into a luminance backdrop.
func LoadBackground(path string) (*scene.Backdrop, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open background: %w", err)
	}
	defer f.Close()

	b, err := DecodeBackdrop(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// DecodeBackdrop decodes an image and converts it to perceptual lightness.
func DecodeBackdrop(r io.Reader) (*scene.Backdrop, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage samples img down to at most MaxWidth x MaxHeight.
// Fully transparent pixels read as black.
func FromImage(img image.Image) *scene.Backdrop {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	w, h := min(srcW, MaxWidth), min(srcH, MaxHeight)
	if w == 0 || h == 0 {
		return &scene.Backdrop{}
	}

	b := &scene.Backdrop{Width: w, Height: h, Lum: make([]float64, w*h)}
	for y := range h {
		sy := bounds.Min.Y + y*srcH/h
		for x := range w {
			sx := bounds.Min.X + x*srcW/w
			c, ok := colorful.MakeColor(img.At(sx, sy))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			b.Lum[y*w+x] = clamp01(l)
		}
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
