package wallpaper

import "time"

// MaxFileSize is the ceiling for imported images, enforced both for local
// files and incrementally during downloads.
const MaxFileSize = 50 * 1024 * 1024 // 50 MiB

// hashChunkSize is the read buffer used while streaming file bytes into the
// content hash.
const hashChunkSize = 32 * 1024

// DownloadTimeout bounds the single URL-import request.
const DownloadTimeout = 30 * time.Second

// ThumbnailQuality is the JPEG quality used for generated thumbnails.
const ThumbnailQuality = 85

// UserAgent identifies wallman to remote image hosts.
const UserAgent = "wallman/1.0"

// supportedFormats is the extension allowlist, lowercased.
var supportedFormats = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// SupportedFormat reports whether ext (with leading dot, any case) is an
// accepted image extension.
func SupportedFormat(ext string) bool {
	return supportedFormats[lowerExt(ext)]
}
