package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/giobyte8/imgresize/internal/models"
)

var (
	ErrEmptyFile         = errors.New("file is empty")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecodeFailed      = errors.New("failed to decode image")
)

// Reads the file at path and decodes it
func ReadFile(path string) (*models.SourceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return Decode(filepath.Base(path), data)
}

// Reads r until EOF and decodes the result
func Read(name string, r io.Reader) (*models.SourceImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return Decode(name, data)
}

// Sniffs the MIME type of data and decodes it into a SourceImage.
// data is retained by the returned image, callers must not modify it.
func Decode(name string, data []byte) (*models.SourceImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}

	mimeType, err := SniffMIME(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	img, err := DecodeAs(data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf(
			"%s: %w: invalid dimensions %dx%d",
			name,
			ErrDecodeFailed,
			bounds.Dx(),
			bounds.Dy(),
		)
	}

	slog.Debug(
		"Image decoded",
		"name", name,
		"mimeType", mimeType,
		"width", bounds.Dx(),
		"height", bounds.Dy(),
	)

	return &models.SourceImage{
		ID:       uuid.New(),
		Name:     name,
		MIMEType: mimeType,
		Data:     data,
		Image:    img,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

// Detects the MIME type from the leading bytes of data. Only image
// types are accepted.
func SniffMIME(data []byte) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", ErrUnsupportedFormat
	}

	if !filetype.IsImage(data) || !IsSupportedMIME(kind.MIME.Value) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}

	return kind.MIME.Value, nil
}

// Decodes data with the decoder registered for mimeType
func DecodeAs(data []byte, mimeType string) (image.Image, error) {
	img, err := decodeReader(bytes.NewReader(data), mimeType)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w (%s): %w", ErrDecodeFailed, mimeType, err)
	}

	return img, nil
}

func decodeReader(r io.Reader, mimeType string) (image.Image, error) {
	switch mimeType {
	case "image/jpeg":
		return jpeg.Decode(r)

	case "image/png":
		return png.Decode(r)

	case "image/gif":
		return gif.Decode(r)

	case "image/bmp":
		return bmp.Decode(r)

	case "image/tiff":
		return tiff.Decode(r)

	case "image/webp":
		return webp.Decode(r)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}
