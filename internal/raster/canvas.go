package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Computes the rendered size of a w x h image at the given scale.
// Each side is rounded to the nearest pixel and never drops below 1.
func TargetSize(w, h int, scale float64) (int, int) {
	tw := int(math.Round(float64(w) * scale))
	th := int(math.Round(float64(h) * scale))

	return max(tw, 1), max(th, 1)
}

// Canvas is the drawing surface used for previews and exports. Every
// Render clears it and redraws the whole source, nothing is patched
// incrementally.
type Canvas struct {
	surface *image.RGBA
}

func NewCanvas() *Canvas {
	return &Canvas{}
}

// Current surface, nil until the first Render
func (c *Canvas) Image() *image.RGBA {
	return c.surface
}

func (c *Canvas) Width() int {
	if c.surface == nil {
		return 0
	}
	return c.surface.Bounds().Dx()
}

func (c *Canvas) Height() int {
	if c.surface == nil {
		return 0
	}
	return c.surface.Bounds().Dy()
}

// Resizes the surface to width x height. Contents are undefined until
// the next Clear.
func (c *Canvas) Resize(width, height int) {
	if c.surface != nil &&
		c.surface.Bounds().Dx() == width &&
		c.surface.Bounds().Dy() == height {
		return
	}

	c.surface = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Sets every pixel to transparent black
func (c *Canvas) Clear() {
	if c.surface == nil {
		return
	}
	draw.Draw(c.surface, c.surface.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Draws src scaled to fill the canvas at TargetSize(src, scale)
func (c *Canvas) Render(src image.Image, scale float64, resampler Resampler) {
	bounds := src.Bounds()
	width, height := TargetSize(bounds.Dx(), bounds.Dy(), scale)

	c.Resize(width, height)
	c.Clear()
	resampler.Scale(c.surface, src)
}

// Discards the surface
func (c *Canvas) Reset() {
	c.surface = nil
}

// Renders src at scale onto a new canvas and returns its surface
func Render(src image.Image, scale float64, resampler Resampler) *image.RGBA {
	canvas := NewCanvas()
	canvas.Render(src, scale, resampler)

	return canvas.Image()
}
