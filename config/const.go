package config

// AppName is the application name, used for storage and log paths.
const AppName = "wallman"

const (
	// ConfigFileName is the name of the application config file inside the storage root.
	ConfigFileName = "config.toml"

	// CollectionFileName is the name of the collection metadata file inside the storage root.
	CollectionFileName = "collection.toml"

	// WallpapersDirName is the subdirectory holding stored original images.
	WallpapersDirName = "wallpapers"

	// ThumbnailsDirName is the subdirectory holding generated thumbnails.
	ThumbnailsDirName = "thumbnails"
)

const (
	// DefaultThumbnailWidth and DefaultThumbnailHeight define the thumbnail box.
	DefaultThumbnailWidth  = 200
	DefaultThumbnailHeight = 150

	// DefaultGridColumns is the default column count for grid consumers.
	DefaultGridColumns = 5
)

// Backend mode names accepted in wallpaper_backend.
const (
	BackendAuto   = "auto"
	BackendFeh    = "feh"
	BackendSwaybg = "swaybg"
)
