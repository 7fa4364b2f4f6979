package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/giobyte8/imgresize/internal/models"
	"github.com/giobyte8/imgresize/internal/raster"
	"github.com/giobyte8/imgresize/internal/telemetry"
)

var ErrNoSource = errors.New("no source image to export")

const (
	BackendNative   = "native"
	BackendLilliput = "lilliput"
)

// Request holds everything needed to produce a download. It is a
// snapshot taken when the download was requested, later changes to
// the session do not affect it.
type Request struct {
	Source *models.SourceImage
	Scale  float64
	Format models.OutputFormat
}

// Download is an encoded image ready to be saved
type Download struct {
	Name     string
	MIMEType string
	Data     []byte

	Width  int
	Height int
}

type Exporter interface {
	// Decodes the original bytes of req.Source again, renders them at
	// req.Scale and encodes the result as req.Format
	Export(ctx context.Context, req Request) (*Download, error)
}

func NewExporter(
	backend string,
	resampler raster.Resampler,
	telemetry *telemetry.TelemetrySvc,
) (Exporter, error) {
	switch backend {
	case BackendNative, "":
		return NewNativeExporter(resampler, telemetry), nil
	case BackendLilliput:
		return NewLilliputExporter(telemetry), nil
	default:
		return nil, fmt.Errorf("unknown export backend %q", backend)
	}
}

func validate(req Request) error {
	if req.Source == nil || len(req.Source.Data) == 0 {
		return ErrNoSource
	}
	if req.Format != models.FormatPNG && req.Format != models.FormatJPG {
		return fmt.Errorf(
			"%w: unknown format %q",
			raster.ErrEncodeFailed,
			req.Format,
		)
	}

	return nil
}
