package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Resampler draws the whole of src scaled to exactly fill dst
type Resampler interface {
	Name() string
	Scale(dst *image.RGBA, src image.Image)
}

const (
	ResamplerBiLinear = "bilinear"
	ResamplerLinear   = "linear"
	ResamplerNfnt     = "nfnt"
)

const DefaultResampler = ResamplerBiLinear

func NewResampler(name string) (Resampler, error) {
	switch name {
	case ResamplerBiLinear, "":
		return BiLinearResampler{}, nil
	case ResamplerLinear:
		return ImagingResampler{Filter: imaging.Linear}, nil
	case ResamplerNfnt:
		return NfntResampler{Interpolation: resize.Bilinear}, nil
	default:
		return nil, fmt.Errorf("unknown resampler %q", name)
	}
}

// Bilinear interpolation from golang.org/x/image/draw
type BiLinearResampler struct{}

func (BiLinearResampler) Name() string { return ResamplerBiLinear }

func (BiLinearResampler) Scale(dst *image.RGBA, src image.Image) {
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
}

type ImagingResampler struct {
	Filter imaging.ResampleFilter
}

func (ImagingResampler) Name() string { return ResamplerLinear }

func (r ImagingResampler) Scale(dst *image.RGBA, src image.Image) {
	bounds := dst.Bounds()
	resized := imaging.Resize(src, bounds.Dx(), bounds.Dy(), r.Filter)
	draw.Draw(dst, bounds, resized, resized.Bounds().Min, draw.Over)
}

type NfntResampler struct {
	Interpolation resize.InterpolationFunction
}

func (NfntResampler) Name() string { return ResamplerNfnt }

func (r NfntResampler) Scale(dst *image.RGBA, src image.Image) {
	bounds := dst.Bounds()
	resized := resize.Resize(
		uint(bounds.Dx()),
		uint(bounds.Dy()),
		src,
		r.Interpolation,
	)
	draw.Draw(dst, bounds, resized, resized.Bounds().Min, draw.Over)
}
