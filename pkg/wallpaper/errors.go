package wallpaper

import "errors"

// Error kinds surfaced by the import and persistence pipelines. They are
// wrapped with context via fmt.Errorf("...: %w", err) and matched with
// errors.Is.
var (
	// ErrNotFound indicates the source file or path does not exist.
	ErrNotFound = errors.New("source file not found")

	// ErrUnsupportedFormat indicates the file extension is not an accepted image format.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrFileTooLarge indicates the file exceeds the size ceiling.
	ErrFileTooLarge = errors.New("file too large")

	// ErrCorruptImage indicates the image failed to decode or has degenerate dimensions.
	ErrCorruptImage = errors.New("invalid or corrupted image")

	// ErrIO indicates a copy or disk failure while storing an original.
	ErrIO = errors.New("storage i/o failure")

	// ErrThumbnail indicates thumbnail generation failed.
	ErrThumbnail = errors.New("thumbnail generation failed")

	// ErrNetwork indicates a download failure: timeout, non-2xx status or
	// wrong content type.
	ErrNetwork = errors.New("download failure")

	// ErrPersistence indicates the collection file could not be written.
	ErrPersistence = errors.New("collection persistence failure")
)
