package util

import (
	"path/filepath"
	"strings"
)

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".bmp":  "image/bmp",
}

// ImageContentType maps a filename to its MIME type, or "" for unsupported
// extensions.
func ImageContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return imageContentTypes[ext]
}
