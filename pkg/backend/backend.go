// Package backend abstracts the display-server specific mechanism for
// applying a desktop background image. Variants exist for X11 (feh) and
// Wayland compositors (swaybg); selection is either explicit or via
// environment-based display-server detection.
package backend

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"wallman/util/log"
)

// Backend applies images as the desktop background.
type Backend interface {
	// Apply sets the desktop background to the image at imagePath.
	Apply(imagePath string) error

	// Current returns the path of the current background, best effort.
	// ok is false when it cannot be determined.
	Current() (path string, ok bool)
}

var (
	// ErrBackendNotFound indicates the required external tool is absent.
	ErrBackendNotFound = errors.New("wallpaper tool not found")

	// ErrExecutionFailed indicates the external tool errored.
	ErrExecutionFailed = errors.New("wallpaper backend execution failed")
)

// Display server identifiers returned by DetectDisplayServer.
const (
	DisplayX11     = "x11"
	DisplayWayland = "wayland"
	DisplayUnknown = "unknown"
)

// DetectDisplayServer inspects the session environment: XDG_SESSION_TYPE
// (exact "wayland"/"x11"), then WAYLAND_DISPLAY presence, then DISPLAY
// presence. Anything else is "unknown".
func DetectDisplayServer() string {
	switch strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) {
	case DisplayWayland:
		log.Debug("Detected Wayland via XDG_SESSION_TYPE")
		return DisplayWayland
	case DisplayX11:
		log.Debug("Detected X11 via XDG_SESSION_TYPE")
		return DisplayX11
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		log.Debug("Detected Wayland via WAYLAND_DISPLAY")
		return DisplayWayland
	}
	if os.Getenv("DISPLAY") != "" {
		log.Debug("Detected X11 via DISPLAY")
		return DisplayX11
	}

	log.Print("Could not detect display server type")
	return DisplayUnknown
}

// ForName returns the backend for name ("auto", "feh" or "swaybg"). In auto
// mode an undetectable display server falls back to feh with a logged
// warning.
func ForName(name string) (Backend, error) {
	if name == "auto" || name == "" {
		switch DetectDisplayServer() {
		case DisplayWayland:
			name = "swaybg"
		case DisplayX11:
			name = "feh"
		default:
			log.Print("Could not detect display server, defaulting to feh")
			name = "feh"
		}
	}

	switch name {
	case "feh":
		log.Printf("Using feh backend for X11")
		return NewFehBackend(), nil
	case "swaybg":
		log.Printf("Using swaybg backend for Wayland")
		return NewSwaybgBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}
