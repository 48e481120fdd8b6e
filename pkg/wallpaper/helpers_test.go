package wallpaper

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"wallman/config"
)

// writeTestPNG writes a solid-color PNG of the given size and returns its path.
func writeTestPNG(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

// newTestConfig returns a Config rooted at a fresh temp dir.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StoragePath:      t.TempDir(),
		WallpaperBackend: config.BackendFeh,
		ThumbnailSize:    [2]int{config.DefaultThumbnailWidth, config.DefaultThumbnailHeight},
		GridColumns:      config.DefaultGridColumns,
	}
}

// fakeBackend records Apply calls instead of touching the desktop.
type fakeBackend struct {
	applied []string
	err     error
}

func (f *fakeBackend) Apply(imagePath string) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, imagePath)
	return nil
}

func (f *fakeBackend) Current() (string, bool) {
	if len(f.applied) == 0 {
		return "", false
	}
	return f.applied[len(f.applied)-1], true
}

// newTestManager builds a Manager over a temp storage tree and a fake backend.
func newTestManager(t *testing.T) (*Manager, *fakeBackend) {
	t.Helper()
	be := &fakeBackend{}
	mgr, err := NewManager(newTestConfig(t), be)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return mgr, be
}

// wallpapersDirEntries lists the files currently stored under wallpapers/.
func wallpapersDirEntries(t *testing.T, mgr *Manager) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(mgr.fm.RootDir(), config.WallpapersDirName))
	if err != nil {
		t.Fatalf("Failed to read wallpapers dir: %v", err)
	}
	return entries
}
