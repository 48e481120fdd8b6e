package backend

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"wallman/util/log"
)

// FehBackend sets the wallpaper on X11 with feh, invoked as a synchronous
// one-shot process with a scale-to-fill directive. feh records its last
// invocation in ~/.fehbg, which Current reparses.
type FehBackend struct {
	// fehbgPath is overridable for tests; empty means ~/.fehbg.
	fehbgPath string
}

// NewFehBackend creates a feh backend.
func NewFehBackend() *FehBackend {
	return &FehBackend{}
}

// Apply sets the wallpaper via `feh --bg-scale <path>`.
func (b *FehBackend) Apply(imagePath string) error {
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("wallpaper image not found: %s: %w", imagePath, os.ErrNotExist)
	}

	if _, err := exec.LookPath("feh"); err != nil {
		return fmt.Errorf("%w: feh is not installed", ErrBackendNotFound)
	}

	out, err := exec.Command("feh", "--bg-scale", imagePath).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: feh: %v: %s", ErrExecutionFailed, err, strings.TrimSpace(string(out)))
	}

	log.Printf("Set wallpaper using feh: %s", imagePath)
	return nil
}

// Current parses ~/.fehbg for the last feh invocation and returns the image
// path it references. Returns ok=false when the file is missing or no
// invocation line can be parsed.
func (b *FehBackend) Current() (string, bool) {
	path := b.fehbgPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(home, ".fehbg")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("Could not read %s: %v", path, err)
		return "", false
	}

	// Typical format: feh --no-fehbg --bg-scale '/path/to/wallpaper.jpg'
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "feh") || !strings.Contains(line, "--bg-") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		imagePath := strings.Trim(fields[len(fields)-1], `'"`)
		if _, err := os.Stat(imagePath); err == nil {
			return imagePath, true
		}
	}

	log.Debug("Could not parse wallpaper path from .fehbg")
	return "", false
}
