package wallpaper

import (
	"image/color"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_DeliversResultExactlyOnce(t *testing.T) {
	mgr, _ := newTestManager(t)
	src := writeTestPNG(t, t.TempDir(), "async.png", 120, 90, color.White)

	p := NewPipeline(mgr, nil)
	p.Start(2)
	defer p.Stop()

	results := make(chan ImportResult, 1)
	calls := 0
	var mu sync.Mutex
	ok := p.Submit(ImportJob{
		Path: src,
		Callback: func(res ImportResult) {
			mu.Lock()
			calls++
			mu.Unlock()
			results <- res
		},
	})
	require.True(t, ok)

	select {
	case res := <-results:
		require.NoError(t, res.Err)
		require.NotNil(t, res.Wallpaper)
		assert.Equal(t, 120, res.Wallpaper.Width)
	case <-time.After(5 * time.Second):
		t.Fatal("import result never delivered")
	}

	// Give a duplicate delivery a chance to show up.
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestPipeline_ErrorsReachCallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	p := NewPipeline(mgr, nil)
	p.Start(1)
	defer p.Stop()

	results := make(chan ImportResult, 1)
	p.Submit(ImportJob{
		Path:     filepath.Join(t.TempDir(), "missing.png"),
		Callback: func(res ImportResult) { results <- res },
	})

	select {
	case res := <-results:
		assert.Error(t, res.Err)
		assert.Nil(t, res.Wallpaper)
	case <-time.After(5 * time.Second):
		t.Fatal("error result never delivered")
	}
}

// Callbacks run through the injected dispatch function, which an embedder
// points at its UI-thread marshaller.
func TestPipeline_DispatchMarshalsCallbacks(t *testing.T) {
	mgr, _ := newTestManager(t)
	src := writeTestPNG(t, t.TempDir(), "queued.png", 60, 60, color.White)

	queue := make(chan func(), 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for f := range queue {
			f()
		}
	}()

	p := NewPipeline(mgr, func(f func()) { queue <- f })
	p.Start(1)

	results := make(chan ImportResult, 1)
	p.Submit(ImportJob{Path: src, Callback: func(res ImportResult) { results <- res }})

	select {
	case res := <-results:
		require.NoError(t, res.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("dispatched result never delivered")
	}

	p.Stop()
	close(queue)
	<-done
}

func TestPipeline_SubmitAfterStop(t *testing.T) {
	mgr, _ := newTestManager(t)
	p := NewPipeline(mgr, nil)
	p.Start(1)
	p.Stop()

	ok := p.Submit(ImportJob{Path: "whatever"})
	assert.False(t, ok)
}
