package wallpaper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wallman/config"
	"wallman/util/log"
)

// FileManager handles all file system operations for stored wallpapers.
// Originals live in <root>/wallpapers/<id><ext>; thumbnails in
// <root>/thumbnails/<id>.jpg.
type FileManager struct {
	rootDir string
}

// NewFileManager creates a FileManager rooted at the storage path.
func NewFileManager(rootDir string) *FileManager {
	return &FileManager{rootDir: rootDir}
}

// RootDir returns the storage root.
func (fm *FileManager) RootDir() string {
	return fm.rootDir
}

// EnsureDirs creates the storage directory tree.
func (fm *FileManager) EnsureDirs() error {
	for _, dir := range []string{
		fm.rootDir,
		filepath.Join(fm.rootDir, config.WallpapersDirName),
		filepath.Join(fm.rootDir, config.ThumbnailsDirName),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// validateID ensures the ID does not contain path traversal characters.
func (fm *FileManager) validateID(id string) error {
	if id == "" || strings.Contains(id, "..") || strings.ContainsRune(id, filepath.Separator) {
		return fmt.Errorf("invalid id: contains illegal characters")
	}
	return nil
}

// WallpaperPath returns the absolute path for a stored original.
func (fm *FileManager) WallpaperPath(id, ext string) (string, error) {
	if err := fm.validateID(id); err != nil {
		return "", err
	}
	if strings.Contains(ext, "..") || strings.ContainsRune(ext, filepath.Separator) {
		return "", fmt.Errorf("invalid extension")
	}
	return filepath.Join(fm.rootDir, config.WallpapersDirName, id+ext), nil
}

// ThumbnailPath returns the absolute path for an image's thumbnail.
// Thumbnails are always JPEG.
func (fm *FileManager) ThumbnailPath(id string) (string, error) {
	if err := fm.validateID(id); err != nil {
		return "", err
	}
	return filepath.Join(fm.rootDir, config.ThumbnailsDirName, id+".jpg"), nil
}

// TempPath returns a path under the storage root for an in-flight download.
func (fm *FileManager) TempPath(name string) string {
	return filepath.Join(fm.rootDir, name)
}

// Remove deletes the stored original and the thumbnail for an ID. Missing
// files are not errors; the first real failure is returned.
func (fm *FileManager) Remove(id string) error {
	if err := fm.validateID(id); err != nil {
		return err
	}

	var filesToDelete []string
	matches, _ := filepath.Glob(filepath.Join(fm.rootDir, config.WallpapersDirName, id+".*"))
	filesToDelete = append(filesToDelete, matches...)
	if thumb, err := fm.ThumbnailPath(id); err == nil {
		filesToDelete = append(filesToDelete, thumb)
	}

	var firstErr error
	for _, f := range filesToDelete {
		if err := os.Remove(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.Printf("FileManager: Failed to delete %s: %v", f, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Debugf("FileManager: Deleted %s", f)
	}
	return firstErr
}

// CleanupOrphans removes originals and thumbnails whose ID is not present in
// knownIDs. It never touches the collection itself and reports how many
// files it removed.
func (fm *FileManager) CleanupOrphans(knownIDs map[string]bool) int {
	log.Print("FileManager: Starting orphan cleanup...")
	deletedCount := 0

	for _, sub := range []string{config.WallpapersDirName, config.ThumbnailsDirName} {
		dir := filepath.Join(fm.rootDir, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("FileManager: Error reading %s during cleanup: %v", dir, err)
			}
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			id := strings.TrimSuffix(name, filepath.Ext(name))
			if knownIDs[id] {
				continue
			}
			if err := os.Remove(filepath.Join(dir, name)); err == nil {
				deletedCount++
			}
		}
	}

	log.Printf("FileManager: Orphan cleanup finished. Removed %d files.", deletedCount)
	return deletedCount
}
