// Package config provides TOML-backed configuration for the wallman core.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"wallman/util/log"
)

// Config holds the application configuration. It is owned by the caller and
// passed into the manager by reference; the manager updates
// CurrentWallpaperID as a side effect of applying a wallpaper.
type Config struct {
	StoragePath        string `toml:"storage_path"`
	CurrentWallpaperID string `toml:"current_wallpaper_id,omitempty"`
	WallpaperBackend   string `toml:"wallpaper_backend"`
	ThumbnailSize      [2]int `toml:"thumbnail_size"`
	GridColumns        int    `toml:"grid_columns"`
}

// Default returns a Config populated with default values rooted at the
// default storage path.
func Default() (*Config, error) {
	root, err := DefaultStoragePath()
	if err != nil {
		return nil, err
	}
	return &Config{
		StoragePath:      root,
		WallpaperBackend: BackendAuto,
		ThumbnailSize:    [2]int{DefaultThumbnailWidth, DefaultThumbnailHeight},
		GridColumns:      DefaultGridColumns,
	}, nil
}

// DefaultStoragePath returns the default storage root for wallpapers.
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// DefaultConfigPath returns the default location of the config file.
func DefaultConfigPath() (string, error) {
	root, err := DefaultStoragePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFileName), nil
}

// Load reads a Config from path. A missing or unreadable file yields the
// defaults rather than an error; the caller may persist them with Save.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config file not found at %s, using defaults", path)
			return cfg, nil
		}
		log.Printf("Failed to load config from %s: %v. Using defaults", path, err)
		return Default()
	}

	if cfg.ThumbnailSize[0] <= 0 || cfg.ThumbnailSize[1] <= 0 {
		cfg.ThumbnailSize = [2]int{DefaultThumbnailWidth, DefaultThumbnailHeight}
	}
	if cfg.WallpaperBackend == "" {
		cfg.WallpaperBackend = BackendAuto
	}
	if cfg.GridColumns <= 0 {
		cfg.GridColumns = DefaultGridColumns
	}

	log.Printf("Loaded configuration from %s", path)
	return cfg, nil
}

// Save writes the Config to path atomically (write temp, then rename).
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing config file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}

// ConfigPath returns the location of the config file inside the storage root.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.StoragePath, ConfigFileName)
}

// CollectionPath returns the location of the collection file inside the
// storage root.
func (c *Config) CollectionPath() string {
	return filepath.Join(c.StoragePath, CollectionFileName)
}

// InitializeStorage creates the storage directory tree.
func (c *Config) InitializeStorage() error {
	dirs := []string{
		c.StoragePath,
		filepath.Join(c.StoragePath, WallpapersDirName),
		filepath.Join(c.StoragePath, ThumbnailsDirName),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
