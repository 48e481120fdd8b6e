package wallpaper

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"wallman/util/log"
)

// Thumbnailer renders fixed-size letterboxed previews for stored originals.
// Every thumbnail has exactly the configured box dimensions regardless of
// the source aspect ratio.
type Thumbnailer struct {
	fm        *FileManager
	width     int
	height    int
	resampler imaging.ResampleFilter
}

// NewThumbnailer creates a Thumbnailer writing into fm's thumbnail
// directory with the given box size.
func NewThumbnailer(fm *FileManager, width, height int) *Thumbnailer {
	return &Thumbnailer{
		fm:        fm,
		width:     width,
		height:    height,
		resampler: imaging.Lanczos,
	}
}

// Generate produces the thumbnail for a stored original and returns its
// path. The source image is composited onto opaque white (flattening any
// alpha), scaled to fit the box preserving aspect ratio, centered on a black
// canvas and encoded as JPEG.
func (t *Thumbnailer) Generate(sourcePath, id string) (string, error) {
	thumbPath, err := t.fm.ThumbnailPath(id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrThumbnail, err)
	}

	src, err := imaging.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrThumbnail, sourcePath, err)
	}

	// Flatten transparency onto white before the lossy encode; palette
	// images come out of the decoder expanded already.
	bounds := src.Bounds()
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.Overlay(flat, src, image.Pt(0, 0), 1.0)

	fitted := imaging.Fit(flat, t.width, t.height, t.resampler)

	canvas := imaging.New(t.width, t.height, color.Black)
	thumb := imaging.PasteCenter(canvas, fitted)

	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(ThumbnailQuality)); err != nil {
		return "", fmt.Errorf("%w: save %s: %v", ErrThumbnail, thumbPath, err)
	}

	log.Debugf("Generated thumbnail: %s", thumbPath)
	return thumbPath, nil
}
