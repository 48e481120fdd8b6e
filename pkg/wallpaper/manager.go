// Package wallpaper implements the wallman collection engine: content
// addressed import of images, thumbnail generation, durable collection
// metadata and application of wallpapers through a display-server backend.
package wallpaper

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/singleflight"

	"wallman/config"
	"wallman/pkg/backend"
	"wallman/util/log"
)

// Manager composes the import and apply pipelines. It owns the collection
// and a single backend instance selected at construction time. One logical
// owner per Manager; callers serialize SetWallpaper.
type Manager struct {
	cfg         *config.Config
	be          backend.Backend
	fm          *FileManager
	thumbnailer *Thumbnailer
	downloader  *Downloader
	collection  *Collection

	// urlGroup collapses concurrent imports of the same URL into one
	// download.
	urlGroup singleflight.Group
}

// NewManager creates a Manager over cfg. When be is nil the backend is
// selected from cfg.WallpaperBackend (auto mode detects the display
// server). The storage tree is created and the collection loaded; a corrupt
// collection file logs and starts empty rather than failing construction.
func NewManager(cfg *config.Config, be backend.Backend) (*Manager, error) {
	if err := cfg.InitializeStorage(); err != nil {
		return nil, err
	}

	if be == nil {
		var err error
		be, err = backend.ForName(cfg.WallpaperBackend)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize wallpaper backend: %w", err)
		}
	}

	fm := NewFileManager(cfg.StoragePath)
	m := &Manager{
		cfg:         cfg,
		be:          be,
		fm:          fm,
		thumbnailer: NewThumbnailer(fm, cfg.ThumbnailSize[0], cfg.ThumbnailSize[1]),
		downloader:  NewDownloader(fm),
		collection:  NewCollection(cfg.CollectionPath()),
	}

	if err := m.collection.Load(); err != nil {
		log.Printf("Failed to load collection: %v", err)
	}
	return m, nil
}

// Backend returns the backend selected at construction.
func (m *Manager) Backend() backend.Backend {
	return m.be
}

// ImportFromFile imports a local image: validate, hash, dedupe, copy,
// thumbnail, record, persist. An already-imported byte content returns the
// existing Wallpaper without touching storage. originalURL records the
// remote source for URL imports and is empty for local ones.
func (m *Manager) ImportFromFile(path, originalURL string) (*Wallpaper, error) {
	log.Printf("Importing wallpaper from file: %s", path)

	width, height, err := ValidateImage(path)
	if err != nil {
		return nil, err
	}

	id, err := HashFile(path)
	if err != nil {
		return nil, err
	}

	if existing, ok := m.collection.Get(id); ok {
		log.Printf("Wallpaper already exists: %s", id)
		return existing, nil
	}

	targetPath, err := m.fm.WallpaperPath(id, sourceExt(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := CopyFile(path, targetPath); err != nil {
		return nil, err
	}

	// A failure past this point leaves the copied original orphaned; see
	// CleanupOrphans.
	thumbnailPath, err := m.thumbnailer.Generate(targetPath, id)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIO, targetPath, err)
	}

	w := &Wallpaper{
		ID:            id,
		FilePath:      targetPath,
		ThumbnailPath: thumbnailPath,
		OriginalURL:   originalURL,
		AddedDate:     time.Now(),
		Width:         width,
		Height:        height,
		FileSize:      info.Size(),
	}

	m.collection.Add(w)
	if err := m.collection.Save(); err != nil {
		return nil, err
	}

	log.Printf("Successfully imported wallpaper: %s", id)
	return w, nil
}

// ImportFromURL downloads an image and imports it. The temp file is removed
// whether the import succeeds or fails. Concurrent calls for the same URL
// share one download.
func (m *Manager) ImportFromURL(ctx context.Context, url string) (*Wallpaper, error) {
	res, err, _ := m.urlGroup.Do(url, func() (interface{}, error) {
		return m.importFromURL(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return res.(*Wallpaper), nil
}

func (m *Manager) importFromURL(ctx context.Context, url string) (*Wallpaper, error) {
	log.Printf("Importing wallpaper from URL: %s", url)

	tempPath, err := m.downloader.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tempPath)

	w, err := m.ImportFromFile(tempPath, url)
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully imported wallpaper from URL: %s", w.ID)
	return w, nil
}

// SetWallpaper applies w as the desktop background, then stamps LastUsed,
// updates the configured current wallpaper id and persists config and
// collection. A backend failure aborts before any mutation.
func (m *Manager) SetWallpaper(w *Wallpaper) error {
	log.Printf("Setting wallpaper: %s", w.ID)

	if err := m.be.Apply(w.FilePath); err != nil {
		return err
	}

	w.Touch(time.Now())

	m.cfg.CurrentWallpaperID = w.ID
	if err := m.cfg.Save(m.cfg.ConfigPath()); err != nil {
		return err
	}
	if err := m.collection.Save(); err != nil {
		return err
	}

	log.Printf("Wallpaper set successfully: %s", w.ID)
	return nil
}

// GetAllWallpapers returns a snapshot of the collection; order is
// unspecified.
func (m *Manager) GetAllWallpapers() []*Wallpaper {
	return m.collection.List()
}

// GetWallpaper looks up a wallpaper by id.
func (m *Manager) GetWallpaper(id string) (*Wallpaper, bool) {
	return m.collection.Get(id)
}

// GetCurrentWallpaper returns the wallpaper referenced by the configured
// current id; ok is false when unset or stale.
func (m *Manager) GetCurrentWallpaper() (*Wallpaper, bool) {
	if m.cfg.CurrentWallpaperID == "" {
		return nil, false
	}
	return m.collection.Get(m.cfg.CurrentWallpaperID)
}

// RemoveWallpaper drops a wallpaper from the collection, persists and
// deletes its stored original and thumbnail. Clears the configured current
// id when it pointed at the removed entry.
func (m *Manager) RemoveWallpaper(id string) error {
	w, ok := m.collection.Remove(id)
	if !ok {
		return fmt.Errorf("%w: no wallpaper with id %s", ErrNotFound, id)
	}

	if err := m.collection.Save(); err != nil {
		return err
	}

	if err := m.fm.Remove(w.ID); err != nil {
		log.Printf("Failed to delete files for %s: %v", w.ID, err)
	}

	if m.cfg.CurrentWallpaperID == id {
		m.cfg.CurrentWallpaperID = ""
		if err := m.cfg.Save(m.cfg.ConfigPath()); err != nil {
			return err
		}
	}
	return nil
}

// CleanupOrphans removes stored files with no collection entry and returns
// how many were deleted. Never run implicitly during import.
func (m *Manager) CleanupOrphans() int {
	return m.fm.CleanupOrphans(m.collection.KnownIDs())
}
