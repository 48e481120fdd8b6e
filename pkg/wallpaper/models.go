package wallpaper

import "time"

// Wallpaper is one imported image. ID is the lowercase hex SHA-256 digest of
// the file bytes and uniquely determines the stored content; two imports of
// identical bytes resolve to the same Wallpaper.
//
// The struct doubles as the TOML record persisted in the collection file.
// Optional fields carry omitempty because TOML has no null value.
type Wallpaper struct {
	ID            string     `toml:"id"`
	FilePath      string     `toml:"file_path"`
	ThumbnailPath string     `toml:"thumbnail_path"`
	OriginalURL   string     `toml:"original_url,omitempty"`
	AddedDate     time.Time  `toml:"added_date"`
	LastUsed      *time.Time `toml:"last_used,omitempty"`
	Width         int        `toml:"width"`
	Height        int        `toml:"height"`
	FileSize      int64      `toml:"file_size"`
}

// Touch stamps LastUsed with now. Called after a wallpaper has been applied.
func (w *Wallpaper) Touch(now time.Time) {
	w.LastUsed = &now
}
