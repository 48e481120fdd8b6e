package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFehbg(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".fehbg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFehCurrent_ParsesFehbg(t *testing.T) {
	img := filepath.Join(t.TempDir(), "wall.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpg"), 0o644))

	be := &FehBackend{fehbgPath: writeFehbg(t, "#!/bin/sh\nfeh --no-fehbg --bg-scale '"+img+"'\n")}

	got, ok := be.Current()
	assert.True(t, ok)
	assert.Equal(t, img, got)
}

func TestFehCurrent_DoubleQuotedPath(t *testing.T) {
	img := filepath.Join(t.TempDir(), "wall.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))

	be := &FehBackend{fehbgPath: writeFehbg(t, "feh --bg-fill \""+img+"\"\n")}

	got, ok := be.Current()
	assert.True(t, ok)
	assert.Equal(t, img, got)
}

func TestFehCurrent_MissingFile(t *testing.T) {
	be := &FehBackend{fehbgPath: filepath.Join(t.TempDir(), ".fehbg")}

	_, ok := be.Current()
	assert.False(t, ok)
}

func TestFehCurrent_ReferencedImageGone(t *testing.T) {
	gone := filepath.Join(t.TempDir(), "deleted.jpg")
	be := &FehBackend{fehbgPath: writeFehbg(t, "feh --bg-scale '"+gone+"'\n")}

	_, ok := be.Current()
	assert.False(t, ok)
}

func TestFehCurrent_NoFehLine(t *testing.T) {
	be := &FehBackend{fehbgPath: writeFehbg(t, "#!/bin/sh\nxsetroot -solid black\n")}

	_, ok := be.Current()
	assert.False(t, ok)
}

func TestFehApply_MissingImage(t *testing.T) {
	be := NewFehBackend()

	err := be.Apply(filepath.Join(t.TempDir(), "nope.png"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
