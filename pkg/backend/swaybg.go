package backend

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"wallman/util/log"
)

// terminateTimeout is how long a previous swaybg instance gets to exit after
// SIGTERM before it is killed.
const terminateTimeout = 2 * time.Second

// SwaybgBackend sets the wallpaper on Wayland with swaybg, which must stay
// running to keep the background painted. The backend owns at most one live
// child at a time; Apply terminates the previous instance before launching a
// new one. There is no external state file, so Current reports the last
// successfully launched path.
type SwaybgBackend struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	done    chan struct{}
	current string
}

// NewSwaybgBackend creates a swaybg backend with no running child.
func NewSwaybgBackend() *SwaybgBackend {
	return &SwaybgBackend{}
}

// Apply launches `swaybg -i <path> -m fill` after terminating any previous
// instance owned by this backend and, best effort, any stray swaybg process
// system-wide. Calls must be serialized by the caller; the internal mutex
// only protects the process handle.
func (b *SwaybgBackend) Apply(imagePath string) error {
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("wallpaper image not found: %s: %w", imagePath, os.ErrNotExist)
	}

	if _, err := exec.LookPath("swaybg"); err != nil {
		return fmt.Errorf("%w: swaybg is not installed", ErrBackendNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.terminateLocked()

	// Stray instances from other sessions would paint over ours.
	if err := exec.Command("pkill", "swaybg").Run(); err != nil {
		log.Debugf("pkill swaybg: %v", err)
	}

	cmd := exec.Command("swaybg", "-i", imagePath, "-m", "fill")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: swaybg: %v", ErrExecutionFailed, err)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	b.cmd = cmd
	b.done = done
	b.current = imagePath

	log.Printf("Set wallpaper using swaybg: %s", imagePath)
	return nil
}

// terminateLocked stops the owned swaybg child: graceful SIGTERM, short
// wait, then kill. Caller must hold b.mu.
func (b *SwaybgBackend) terminateLocked() {
	if b.cmd == nil || b.cmd.Process == nil {
		return
	}

	if err := b.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		log.Debugf("Failed to terminate previous swaybg process: %v", err)
	}

	select {
	case <-b.done:
	case <-time.After(terminateTimeout):
		log.Print("Previous swaybg did not exit in time, killing")
		_ = b.cmd.Process.Kill()
		<-b.done
	}

	b.cmd = nil
	b.done = nil
}

// Current returns the in-memory path of the last launched instance.
func (b *SwaybgBackend) Current() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.current != ""
}

// Shutdown terminates the owned swaybg child, if any. The background resets
// to the compositor default.
func (b *SwaybgBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.terminateLocked()
	b.current = ""
}
