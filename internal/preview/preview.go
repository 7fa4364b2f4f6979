// Package preview draws rendered canvases in the terminal.
package preview

import (
	"image"
	"math"

	"github.com/qeesung/image2ascii/convert"
)

const DefaultWidth = 80

// Terminal cells are roughly twice as tall as they are wide
const cellAspect = 0.5

type Renderer struct {
	width     int
	colored   bool
	converter *convert.ImageConverter
}

func NewRenderer(width int, colored bool) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}

	return &Renderer{
		width:     width,
		colored:   colored,
		converter: convert.NewImageConverter(),
	}
}

// Size in terminal cells used for an image of w x h pixels. Images
// narrower than the configured width are not enlarged.
func (r *Renderer) Size(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}

	cols := min(r.width, w)
	rows := int(math.Round(float64(cols) * float64(h) / float64(w) * cellAspect))
	return cols, max(rows, 1)
}

// Renders img as text, empty for a nil image
func (r *Renderer) Render(img image.Image) string {
	if img == nil {
		return ""
	}

	cols, rows := r.Size(img.Bounds().Dx(), img.Bounds().Dy())
	if cols == 0 {
		return ""
	}

	return r.converter.Image2ASCIIString(img, &convert.Options{
		Ratio:       1,
		FixedWidth:  cols,
		FixedHeight: rows,
		Colored:     r.colored,
	})
}
