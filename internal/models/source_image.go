package models

import (
	"image"

	"github.com/google/uuid"
)

// SourceImage is a decoded upload together with the original bytes
// it was decoded from. Exports decode Data again instead of reusing
// Image, so Image is only ever used for previews.
type SourceImage struct {
	ID uuid.UUID

	// Name of the file as selected by the user
	Name string

	// MIME type sniffed from the file contents
	MIMEType string

	Data  []byte
	Image image.Image

	// Natural (unscaled) dimensions in pixels
	Width  int
	Height int
}
