package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giobyte8/imgresize/internal/raster"
	"github.com/giobyte8/imgresize/internal/source"
	"github.com/giobyte8/imgresize/internal/telemetry"
	"github.com/giobyte8/imgresize/internal/telemetry/metrics"
)

// Exports using the same decoders and resampler as the preview
type NativeExporter struct {
	resampler raster.Resampler
	telemetry *telemetry.TelemetrySvc
}

func NewNativeExporter(
	resampler raster.Resampler,
	telemetry *telemetry.TelemetrySvc,
) *NativeExporter {
	if resampler == nil {
		resampler = raster.BiLinearResampler{}
	}

	return &NativeExporter{
		resampler: resampler,
		telemetry: telemetry,
	}
}

func (e *NativeExporter) Export(
	ctx context.Context,
	req Request,
) (*Download, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	slog.Debug(
		"Exporting image",
		"source", req.Source.Name,
		"scale", req.Scale,
		"format", req.Format,
		"backend", BackendNative,
	)

	// Fresh decode of the original bytes, the preview canvas is
	// never reused for exports
	img, err := source.DecodeAs(req.Source.Data, req.Source.MIMEType)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to reload %s for export: %w",
			req.Source.Name,
			err,
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surface := raster.Render(img, req.Scale, e.resampler)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := raster.Encode(surface, req.Format)
	if err != nil {
		return nil, err
	}

	download := &Download{
		Name:     req.Format.DownloadName(),
		MIMEType: req.Format.MIMEType(),
		Data:     data,
		Width:    surface.Bounds().Dx(),
		Height:   surface.Bounds().Dy(),
	}
	recordExport(e.telemetry, req, download, BackendNative)

	return download, nil
}

func recordExport(
	t *telemetry.TelemetrySvc,
	req Request,
	d *Download,
	backend string,
) {
	if t == nil {
		return
	}

	t.Metrics().Increment(
		metrics.ImageExported,
		map[string]string{
			"backend":   backend,
			"format":    req.Format.String(),
			"origSize":  fmt.Sprintf("%d", len(req.Source.Data)),
			"origWidth": fmt.Sprintf("%d", req.Source.Width),
			"size":      fmt.Sprintf("%d", len(d.Data)),
			"width":     fmt.Sprintf("%d", d.Width),
		},
	)
}
