// Package render draws a static PNG preview of the launcher bar.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/desktop-launcher/internal/model"
)

// basicfont.Face7x13 metrics
const (
	glyphWidth = 7
	lineHeight = 13
)

// Options controls the preview layout.
type Options struct {
	ShowNames bool
	Reversed  bool
	// Padding is the horizontal space around each label, in pixels.
	Padding int
	Height  int
}

var (
	colorBackground = color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}
	colorButton     = color.RGBA{R: 0x31, G: 0x32, B: 0x44, A: 0xff}
	colorFocusedBg  = color.RGBA{R: 0x45, G: 0x47, B: 0x5a, A: 0xff}
	colorText       = color.RGBA{R: 0xcd, G: 0xd6, B: 0xf4, A: 0xff}
	colorDimText    = color.RGBA{R: 0x7f, G: 0x84, B: 0x9c, A: 0xff}
	colorIndicator  = color.RGBA{R: 0x89, G: 0xb4, B: 0xfa, A: 0xff}
	colorFavorite   = color.RGBA{R: 0xfa, G: 0xb3, B: 0x87, A: 0xff}
)

// Button is the placement of one item in the preview.
type Button struct {
	AppID  string
	Label  string
	Bounds image.Rectangle
}

// Layout places one button per item from left to right.
func Layout(items []model.ItemView, opts Options) []Button {
	opts = withDefaults(opts)
	order := items
	if opts.Reversed {
		order = make([]model.ItemView, len(items))
		for i, it := range items {
			order[len(items)-1-i] = it
		}
	}

	buttons := make([]Button, 0, len(order))
	x := 0
	for _, it := range order {
		label := it.AppID
		if opts.ShowNames && it.Name != "" {
			label = it.Name
		}
		w := len([]rune(label))*glyphWidth + 2*opts.Padding
		buttons = append(buttons, Button{
			AppID:  it.AppID,
			Label:  label,
			Bounds: image.Rect(x, 0, x+w, opts.Height),
		})
		x += w + 1
	}
	return buttons
}

// Bar draws the items as a bar image.
func Bar(items []model.ItemView, opts Options) *image.RGBA {
	opts = withDefaults(opts)
	buttons := Layout(items, opts)
	states := make(map[string]model.ItemView, len(items))
	for _, it := range items {
		states[it.AppID] = it
	}

	width := 1
	if n := len(buttons); n > 0 {
		width = buttons[n-1].Bounds.Max.X
	}
	img := image.NewRGBA(image.Rect(0, 0, width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	for _, b := range buttons {
		it := states[b.AppID]
		bg := colorButton
		if it.State.IsFocused() {
			bg = colorFocusedBg
		}
		draw.Draw(img, b.Bounds, image.NewUniform(bg), image.Point{}, draw.Src)

		if it.Favorite {
			drawRectangle(img, b.Bounds, colorFavorite)
		}
		if it.State.IsOpen() {
			h := 2
			if it.State.IsFocused() {
				h = 3
			}
			bar := image.Rect(b.Bounds.Min.X+opts.Padding/2, b.Bounds.Max.Y-h, b.Bounds.Max.X-opts.Padding/2, b.Bounds.Max.Y)
			draw.Draw(img, bar, image.NewUniform(colorIndicator), image.Point{}, draw.Src)
		}

		fg := colorDimText
		if it.State.IsOpen() {
			fg = colorText
		}
		baseline := b.Bounds.Min.Y + (opts.Height+lineHeight)/2 - 3
		drawText(img, b.Label, b.Bounds.Min.X+opts.Padding, baseline, fg)
	}
	return img
}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func withDefaults(opts Options) Options {
	if opts.Padding <= 0 {
		opts.Padding = 8
	}
	if opts.Height < lineHeight+6 {
		opts.Height = 24
	}
	return opts
}

// drawRectangle draws the outline of r, clamped to the image.
func drawRectangle(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func drawText(img *image.RGBA, text string, x, baseline int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}
