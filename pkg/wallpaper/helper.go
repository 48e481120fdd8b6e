package wallpaper

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// lowerExt lowercases a file extension, keeping the leading dot.
func lowerExt(ext string) string {
	return strings.ToLower(ext)
}

// extFromContentType maps an image content type to a file extension.
// Returns "" when the type carries no usable hint.
func extFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	}
	return ""
}

// extFromURL extracts a supported image extension from the path component of
// a URL, ignoring query parameters. Returns "" when the suffix is not a
// supported format.
func extFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	ext := lowerExt(path.Ext(u.Path))
	if SupportedFormat(ext) {
		return ext
	}
	return ""
}

// downloadExt picks the extension for a downloaded image: content type
// first, then the URL suffix, defaulting to .jpg.
func downloadExt(contentType, rawURL string) string {
	if ext := extFromContentType(contentType); ext != "" {
		return ext
	}
	if ext := extFromURL(rawURL); ext != "" {
		return ext
	}
	return ".jpg"
}

// sourceExt returns the lowercased extension of a local file path.
func sourceExt(p string) string {
	return lowerExt(filepath.Ext(p))
}
