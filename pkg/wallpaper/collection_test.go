package wallpaper

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.toml")

	lastUsed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	remote := &Wallpaper{
		ID:            "aaa111",
		FilePath:      "/store/wallpapers/aaa111.jpg",
		ThumbnailPath: "/store/thumbnails/aaa111.jpg",
		OriginalURL:   "https://example.com/a.jpg",
		AddedDate:     time.Date(2025, 5, 20, 18, 4, 5, 0, time.UTC),
		LastUsed:      &lastUsed,
		Width:         1920,
		Height:        1080,
		FileSize:      123456,
	}
	local := &Wallpaper{
		ID:            "bbb222",
		FilePath:      "/store/wallpapers/bbb222.png",
		ThumbnailPath: "/store/thumbnails/bbb222.jpg",
		AddedDate:     time.Date(2025, 5, 21, 7, 0, 0, 0, time.UTC),
		Width:         800,
		Height:        600,
		FileSize:      999,
	}

	c := NewCollection(path)
	c.Add(remote)
	c.Add(local)
	require.NoError(t, c.Save())

	fresh := NewCollection(path)
	require.NoError(t, fresh.Load())
	require.Equal(t, 2, fresh.Count())

	gotRemote, ok := fresh.Get("aaa111")
	require.True(t, ok)
	assert.Equal(t, remote.FilePath, gotRemote.FilePath)
	assert.Equal(t, remote.ThumbnailPath, gotRemote.ThumbnailPath)
	assert.Equal(t, remote.OriginalURL, gotRemote.OriginalURL)
	assert.Equal(t, remote.Width, gotRemote.Width)
	assert.Equal(t, remote.Height, gotRemote.Height)
	assert.Equal(t, remote.FileSize, gotRemote.FileSize)
	assert.True(t, gotRemote.AddedDate.Equal(remote.AddedDate))
	require.NotNil(t, gotRemote.LastUsed)
	assert.True(t, gotRemote.LastUsed.Equal(lastUsed))

	gotLocal, ok := fresh.Get("bbb222")
	require.True(t, ok)
	assert.Empty(t, gotLocal.OriginalURL)
	assert.Nil(t, gotLocal.LastUsed, "absent last_used must stay nil")
}

// Optional fields are omitted from the file rather than written as
// placeholders; TOML has no null.
func TestCollectionSave_OmitsAbsentOptionals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.toml")
	c := NewCollection(path)
	c.Add(&Wallpaper{
		ID:            "ccc333",
		FilePath:      "/store/wallpapers/ccc333.png",
		ThumbnailPath: "/store/thumbnails/ccc333.jpg",
		AddedDate:     time.Now(),
		Width:         10,
		Height:        10,
		FileSize:      1,
	})
	require.NoError(t, c.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "last_used")
	assert.NotContains(t, string(data), "original_url")
}

func TestCollectionLoad_MissingFile(t *testing.T) {
	c := NewCollection(filepath.Join(t.TempDir(), "collection.toml"))
	require.NoError(t, c.Load())
	assert.Equal(t, 0, c.Count())
}

// A malformed entry is dropped with a warning; the rest of the file loads.
func TestCollectionLoad_SkipsBrokenEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.toml")
	content := `
[wallpapers.good]
id = "good"
file_path = "/store/wallpapers/good.png"
thumbnail_path = "/store/thumbnails/good.jpg"
added_date = 2025-05-20T18:04:05Z
width = 640
height = 480
file_size = 42

[wallpapers.bad]
id = "bad"
file_path = "/store/wallpapers/bad.png"
thumbnail_path = "/store/thumbnails/bad.jpg"
added_date = 2025-05-20T18:04:05Z
width = "not a number"
height = 480
file_size = 42
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c := NewCollection(path)
	require.NoError(t, c.Load())
	assert.Equal(t, 1, c.Count())
	_, ok := c.Get("good")
	assert.True(t, ok)
	_, ok = c.Get("bad")
	assert.False(t, ok)
}

func TestCollectionLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not [ toml"), 0644))

	c := NewCollection(path)
	err := c.Load()
	assert.True(t, errors.Is(err, ErrPersistence), "expected ErrPersistence, got %v", err)
}

// Saves from concurrent importers serialize on the write lock; the file on
// disk must always reload clean with every entry present.
func TestCollectionSave_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.toml")
	c := NewCollection(path)

	const entries = 200
	for i := 0; i < entries; i++ {
		c.Add(&Wallpaper{
			ID:            fmt.Sprintf("id%03d", i),
			FilePath:      fmt.Sprintf("/store/wallpapers/id%03d.png", i),
			ThumbnailPath: fmt.Sprintf("/store/thumbnails/id%03d.jpg", i),
			AddedDate:     time.Now(),
			Width:         1,
			Height:        1,
			FileSize:      1,
		})
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				assert.NoError(t, c.Save())
			}
		}()
	}
	wg.Wait()

	fresh := NewCollection(path)
	require.NoError(t, fresh.Load())
	assert.Equal(t, entries, fresh.Count())

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "no temp file may remain after the last Save")
}

func TestCollectionRemove(t *testing.T) {
	c := NewCollection(filepath.Join(t.TempDir(), "collection.toml"))
	c.Add(&Wallpaper{ID: "x", AddedDate: time.Now()})

	w, ok := c.Remove("x")
	require.True(t, ok)
	assert.Equal(t, "x", w.ID)
	assert.Equal(t, 0, c.Count())

	_, ok = c.Remove("x")
	assert.False(t, ok)
}
