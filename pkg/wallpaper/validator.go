package wallpaper

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	// webp has no stdlib decoder; register the x/image one for
	// DecodeConfig and imaging.Open alike.
	_ "golang.org/x/image/webp"
)

// ValidateImage checks that path points to a supported, decodable image no
// larger than MaxFileSize and returns its pixel dimensions. It runs before
// hashing and copying so a corrupt file is never persisted into storage.
func ValidateImage(path string) (width, height int, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, 0, fmt.Errorf("%w: stat %s: %v", ErrIO, path, err)
	}

	if ext := sourceExt(path); !SupportedFormat(ext) {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if info.Size() > MaxFileSize {
		return 0, 0, fmt.Errorf("%w: %.1fMB (maximum %dMB)",
			ErrFileTooLarge, float64(info.Size())/1024/1024, MaxFileSize/1024/1024)
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: zero-byte dimension %dx%d", ErrCorruptImage, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}
