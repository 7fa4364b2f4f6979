package source

var supportedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/tiff",
	"image/webp",
}

func IsSupportedMIME(mimeType string) bool {
	for _, supported := range supportedMimeTypes {
		if mimeType == supported {
			return true
		}
	}

	return false
}
