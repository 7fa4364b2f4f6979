package raster

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/giobyte8/imgresize/internal/models"
	"github.com/giobyte8/imgresize/internal/pool"
)

var ErrEncodeFailed = errors.New("failed to encode image")

var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// Encodes img in the given output format. png is lossless, jpg uses
// models.JPEGQuality. The returned slice is owned by the caller.
func Encode(img image.Image, format models.OutputFormat) ([]byte, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	var err error
	switch format {
	case models.FormatPNG:
		err = pngEncoder.Encode(buf, img)
	case models.FormatJPG:
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: models.JPEGQuality})
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrEncodeFailed, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w as %s: %w", ErrEncodeFailed, format, err)
	}

	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return data, nil
}
