package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/discord/lilliput"

	"github.com/giobyte8/imgresize/internal/models"
	"github.com/giobyte8/imgresize/internal/raster"
	"github.com/giobyte8/imgresize/internal/telemetry"
)

// PNG zlib level handed to lilliput, 0 (none) to 9 (best)
const lilliputPngCompression = 7

// Exports by decoding, resizing and encoding in a single lilliput
// transform. Requires the cgo build of lilliput.
type LilliputExporter struct {
	telemetry *telemetry.TelemetrySvc
}

func NewLilliputExporter(
	telemetry *telemetry.TelemetrySvc,
) *LilliputExporter {
	return &LilliputExporter{
		telemetry: telemetry,
	}
}

func (e *LilliputExporter) Export(
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
		"backend", BackendLilliput,
	)

	decoder, err := e.decode(req.Source.Name, req.Source.Data)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	origWidth, origHeight, err := e.getOrigDimensions(
		req.Source.Name,
		decoder,
	)
	if err != nil {
		return nil, err
	}

	tgtWidth, tgtHeight := raster.TargetSize(origWidth, origHeight, req.Scale)

	ops := lilliput.NewImageOps(
		max(origWidth, origHeight, tgtWidth, tgtHeight),
	)
	defer ops.Close()

	// Raw RGBA size of the target plus headroom for container
	// overhead, enough for an uncompressed worst case
	outputBuf := make([]byte, tgtWidth*tgtHeight*4+tgtHeight+(1<<20))

	opts := &lilliput.ImageOptions{
		FileType:             req.Format.Extension(),
		Width:                tgtWidth,
		Height:               tgtHeight,
		ResizeMethod:         lilliput.ImageOpsResize,
		NormalizeOrientation: true,
		EncodeOptions:        encodeOptions(req.Format),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoded, err := ops.Transform(decoder, opts, outputBuf)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: lilliput transform of %s: %w",
			raster.ErrEncodeFailed,
			req.Source.Name,
			err,
		)
	}

	data := make([]byte, len(encoded))
	copy(data, encoded)

	download := &Download{
		Name:     req.Format.DownloadName(),
		MIMEType: req.Format.MIMEType(),
		Data:     data,
		Width:    tgtWidth,
		Height:   tgtHeight,
	}
	recordExport(e.telemetry, req, download, BackendLilliput)

	return download, nil
}

func encodeOptions(format models.OutputFormat) map[int]int {
	if format.Lossy() {
		return map[int]int{lilliput.JpegQuality: models.JPEGQuality}
	}
	return map[int]int{lilliput.PngCompression: lilliputPngCompression}
}

func (e *LilliputExporter) decode(
	name string,
	inputBuf []byte,
) (lilliput.Decoder, error) {
	decoder, err := lilliput.NewDecoder(inputBuf)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create lilliput decoder for %s: %w",
			name,
			err,
		)
	}

	return decoder, nil
}

func (e *LilliputExporter) getOrigDimensions(
	name string,
	decoder lilliput.Decoder,
) (int, int, error) {
	imgHeader, err := decoder.Header()
	if err != nil {
		return 0, 0, fmt.Errorf(
			"failed to get image header for %s: %w",
			name,
			err,
		)
	}

	origWidth := imgHeader.Width()
	origHeight := imgHeader.Height()
	if origWidth == 0 || origHeight == 0 {
		return 0, 0, fmt.Errorf(
			"invalid original image dimensions: width=%d, height=%d",
			origWidth,
			origHeight,
		)
	}

	return origWidth, origHeight, nil
}
