package models

import (
	"fmt"
	"strings"
)

// Custom type to represent the encoding used when downloading the
// resized image. It has no effect on the live preview.
type OutputFormat string

const (
	FormatPNG OutputFormat = "png"
	FormatJPG OutputFormat = "jpg"
)

const DefaultFormat = FormatPNG

// Quality used for lossy (jpg) exports, on the 1-100 scale
// used by image/jpeg
const JPEGQuality = 90

// Base name of every downloaded file, extension is appended
const DownloadBaseName = "resized-image"

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

func (f OutputFormat) MIMEType() string {
	if f == FormatJPG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension including the leading dot
func (f OutputFormat) Extension() string {
	if f == FormatJPG {
		return ".jpg"
	}
	return ".png"
}

func (f OutputFormat) Lossy() bool {
	return f == FormatJPG
}

// Name of the file offered for download, e.g. 'resized-image.jpg'
func (f OutputFormat) DownloadName() string {
	return DownloadBaseName + f.Extension()
}

func (f OutputFormat) String() string {
	return string(f)
}
