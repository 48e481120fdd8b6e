package wallpaper

import (
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"wallman/util/log"
)

// Collection is the in-memory id -> Wallpaper map mirrored to a TOML file.
// Load tolerates broken entries; Save is a full rewrite of all entries.
// Access from multiple processes is out of scope and may race.
type Collection struct {
	mu         sync.RWMutex
	wallpapers map[string]*Wallpaper
	path       string
}

// collectionDoc is the on-disk shape: one [wallpapers.<id>] table per entry.
type collectionDoc struct {
	Wallpapers map[string]*Wallpaper `toml:"wallpapers"`
}

// NewCollection creates an empty Collection persisted at path.
func NewCollection(path string) *Collection {
	return &Collection{
		wallpapers: make(map[string]*Wallpaper),
		path:       path,
	}
}

// Load reads the collection file. A missing file yields an empty collection.
// Entries that fail to decode are dropped with a logged warning rather than
// failing the whole load.
func (c *Collection) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wallpapers = make(map[string]*Wallpaper)

	var raw struct {
		Wallpapers map[string]toml.Primitive `toml:"wallpapers"`
	}
	md, err := toml.DecodeFile(c.path, &raw)
	if err != nil {
		if os.IsNotExist(err) {
			log.Print("No existing collection found, starting fresh")
			return nil
		}
		return fmt.Errorf("%w: decode %s: %v", ErrPersistence, c.path, err)
	}

	for id, prim := range raw.Wallpapers {
		var w Wallpaper
		if err := md.PrimitiveDecode(prim, &w); err != nil {
			log.Printf("Failed to load wallpaper %s: %v", id, err)
			continue
		}
		if w.ID == "" {
			w.ID = id
		}
		c.wallpapers[id] = &w
	}

	log.Printf("Loaded %d wallpapers from collection", len(c.wallpapers))
	return nil
}

// Save rewrites the collection file with all current entries, atomically
// (write temp, then rename). The write lock is held for the whole rewrite;
// concurrent Save calls serialize instead of racing over the temp file.
func (c *Collection) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := collectionDoc{Wallpapers: c.wallpapers}

	tmp := c.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrPersistence, tmp, err)
	}

	if err := toml.NewEncoder(file).Encode(doc); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: encode %s: %v", ErrPersistence, c.path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close %s: %v", ErrPersistence, tmp, err)
	}

	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrPersistence, c.path, err)
	}

	log.Debugf("Saved %d wallpapers to collection", len(doc.Wallpapers))
	return nil
}

// Add inserts or replaces an entry.
func (c *Collection) Add(w *Wallpaper) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wallpapers[w.ID] = w
}

// Get returns the entry for id.
func (c *Collection) Get(id string) (*Wallpaper, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.wallpapers[id]
	return w, ok
}

// Contains reports whether id is in the collection.
func (c *Collection) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.wallpapers[id]
	return ok
}

// Remove drops the entry for id, returning it if present.
func (c *Collection) Remove(id string) (*Wallpaper, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.wallpapers[id]
	if ok {
		delete(c.wallpapers, id)
	}
	return w, ok
}

// List returns a snapshot of all entries; order is unspecified.
func (c *Collection) List() []*Wallpaper {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]*Wallpaper, 0, len(c.wallpapers))
	for _, w := range c.wallpapers {
		res = append(res, w)
	}
	return res
}

// Count returns the number of entries.
func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.wallpapers)
}

// KnownIDs returns the set of collection IDs, for orphan cleanup.
func (c *Collection) KnownIDs() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make(map[string]bool, len(c.wallpapers))
	for id := range c.wallpapers {
		res[id] = true
	}
	return res
}
