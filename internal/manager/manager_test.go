package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matjam/wallrotate/internal/catalog"
	"github.com/matjam/wallrotate/internal/state"
	"github.com/matjam/wallrotate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSetter struct {
	mu      sync.Mutex
	applied []string
	fail    error
}

func (s *fakeSetter) SetStyle(types.StyleMode) error { return nil }

func (s *fakeSetter) SetWallpaper(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.applied = append(s.applied, path)
	return nil
}

func (s *fakeSetter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applied)
}

// slowSetter holds every write open for a while and records the highest
// number of writes that were in progress at once.
type slowSetter struct {
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	writes   atomic.Int32
}

func (s *slowSetter) write() {
	n := s.inFlight.Add(1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(s.delay)
	s.inFlight.Add(-1)
	s.writes.Add(1)
}

func (s *slowSetter) SetStyle(types.StyleMode) error {
	s.write()
	return nil
}

func (s *slowSetter) SetWallpaper(string) error {
	s.write()
	return nil
}

func newSlowManager(t *testing.T, setter *slowSetter) *Manager {
	t.Helper()
	m := New(Settings{
		Interval: time.Hour,
		Style:    types.StyleFill,
	}, Deps{
		Materializer: passthrough{},
		Setter:       setter,
		BuildCatalog: staticCatalog("/a.png", "/b.png"),
		Slice:        5 * time.Millisecond,
	})
	t.Cleanup(m.StopSlideshow)
	return m
}

type passthrough struct{}

func (passthrough) Materialize(src string, _ bool) (string, error) { return src, nil }

func staticCatalog(images ...string) func(context.Context, catalog.Options) ([]string, error) {
	return func(context.Context, catalog.Options) ([]string, error) {
		return images, nil
	}
}

func newTestManager(t *testing.T, setter *fakeSetter, images ...string) (*Manager, string) {
	t.Helper()
	statePath := filepath.Join(t.TempDir(), "state.toml")
	m := New(Settings{
		Interval:     time.Hour,
		Style:        types.StyleFill,
		PollInterval: 5 * time.Millisecond,
		StatePath:    statePath,
	}, Deps{
		Materializer: passthrough{},
		Setter:       setter,
		BuildCatalog: staticCatalog(images...),
		Slice:        5 * time.Millisecond,
	})
	t.Cleanup(m.StopSlideshow)
	return m, statePath
}

func TestStartSlideshowPersistsRunning(t *testing.T) {
	setter := &fakeSetter{}
	m, statePath := newTestManager(t, setter, "/a.png", "/b.png")

	require.NoError(t, m.StartSlideshow())
	require.Eventually(t, func() bool { return setter.count() >= 1 }, time.Second, 5*time.Millisecond)

	st := m.Status()
	assert.True(t, st.Running)
	assert.Equal(t, 2, st.ImageCount)
	assert.True(t, state.Load(statePath).Running)
}

func TestStartSlideshowWithoutImages(t *testing.T) {
	m, statePath := newTestManager(t, &fakeSetter{})

	err := m.StartSlideshow()
	require.ErrorIs(t, err, ErrNoImages)
	assert.False(t, m.Status().Running)
	assert.Equal(t, ErrNoImages.Error(), state.Load(statePath).Status)
}

func TestStopSlideshow(t *testing.T) {
	setter := &fakeSetter{}
	m, statePath := newTestManager(t, setter, "/a.png")

	require.NoError(t, m.StartSlideshow())
	m.StopSlideshow()

	st := m.Status()
	assert.False(t, st.Running)
	assert.Equal(t, statusIdle, st.Status)
	assert.False(t, state.Load(statePath).Running)
}

func TestPollRecordsLastImage(t *testing.T) {
	setter := &fakeSetter{}
	m, _ := newTestManager(t, setter, "/a.png")

	require.NoError(t, m.StartSlideshow())
	require.Eventually(t, func() bool {
		return m.CurrentWallpaper() == "/a.png"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Set: /a.png", m.Status().Status)
}

func TestErrorEventStopsSlideshow(t *testing.T) {
	setter := &fakeSetter{fail: errors.New("display unavailable")}
	m, statePath := newTestManager(t, setter, "/a.png")

	require.NoError(t, m.StartSlideshow())
	require.Eventually(t, func() bool {
		return !m.Status().Running
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "display unavailable", m.Status().Status)
	assert.False(t, state.Load(statePath).Running)
}

func TestNextWhileRunningAdvances(t *testing.T) {
	setter := &fakeSetter{}
	m, _ := newTestManager(t, setter, "/a.png", "/b.png")

	require.NoError(t, m.StartSlideshow())
	require.Eventually(t, func() bool { return setter.count() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Next())
	require.Eventually(t, func() bool { return setter.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestNextWhileIdleAppliesOnce(t *testing.T) {
	setter := &fakeSetter{}
	m, statePath := newTestManager(t, setter, "/a.png", "/b.png")

	require.NoError(t, m.Next())
	require.NoError(t, m.Next())

	assert.Len(t, setter.applied, 2)
	assert.False(t, m.Status().Running)
	assert.Equal(t, setter.applied[1], state.Load(statePath).LastImage)
}

func TestNextWhileIdleReportsFailure(t *testing.T) {
	setter := &fakeSetter{fail: errors.New("boom")}
	m, _ := newTestManager(t, setter, "/a.png")

	require.EqualError(t, m.Next(), "boom")
	assert.Equal(t, "boom", m.Status().Status)
}

func TestLoadSplitsFoldersAndFiles(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "one.png")
	require.NoError(t, os.WriteFile(img, []byte("x"), 0o644))

	var got catalog.Options
	m := New(Settings{}, Deps{
		Materializer: passthrough{},
		Setter:       &fakeSetter{},
		BuildCatalog: func(_ context.Context, opts catalog.Options) ([]string, error) {
			got = opts
			return []string{img}, nil
		},
	})

	require.NoError(t, m.Load([]string{dir, img}))
	require.NoError(t, m.Next())

	assert.Equal(t, []catalog.Folder{{Path: dir, IncludeSubfolders: true}}, got.Folders)
	assert.Equal(t, img, got.SingleImage)
}

func TestLoadRejectsBadPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	txt := filepath.Join(dir, "notes.txt")
	for _, p := range []string{a, b, txt} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	m, _ := newTestManager(t, &fakeSetter{})

	assert.Error(t, m.Load(nil))
	assert.Error(t, m.Load([]string{filepath.Join(dir, "missing")}))
	assert.Error(t, m.Load([]string{a, b}))
	assert.ErrorIs(t, m.Load([]string{txt}), catalog.ErrUnsupportedImage)
}

func TestRunResumesPersistedSlideshow(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, state.Save(statePath, state.State{Running: true, Status: "Slideshow running"}))

	setter := &fakeSetter{}
	m := New(Settings{
		Interval:     time.Hour,
		Style:        types.StyleFill,
		PollInterval: 5 * time.Millisecond,
		StatePath:    statePath,
	}, Deps{
		Materializer: passthrough{},
		Setter:       setter,
		BuildCatalog: staticCatalog("/a.png"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx)
	}()

	require.Eventually(t, func() bool { return setter.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// Shutting down keeps the slideshow marked as running for the next launch.
	assert.True(t, state.Load(statePath).Running)
}

func TestQuitEndsRun(t *testing.T) {
	m, _ := newTestManager(t, &fakeSetter{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(context.Background())
	}()

	m.Quit()
	m.Quit()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestRestartWaitsForPreviousWorker(t *testing.T) {
	setter := &slowSetter{delay: 100 * time.Millisecond}
	m := newSlowManager(t, setter)

	require.NoError(t, m.StartSlideshow())
	// The style write happens inside StartSlideshow; wait for the worker's
	// first SetWallpaper to be under way.
	require.Eventually(t, func() bool { return setter.inFlight.Load() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, m.StartSlideshow())
	require.Eventually(t, func() bool { return setter.writes.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), setter.peak.Load(), "wallpaper writes overlapped")
}

func TestIdleApplyWaitsForStoppedWorker(t *testing.T) {
	setter := &slowSetter{delay: 100 * time.Millisecond}
	m := newSlowManager(t, setter)

	require.NoError(t, m.StartSlideshow())
	require.Eventually(t, func() bool { return setter.inFlight.Load() == 1 }, time.Second, time.Millisecond)

	m.StopSlideshow()
	require.NoError(t, m.Next())

	assert.Equal(t, int32(1), setter.peak.Load(), "wallpaper writes overlapped")
	assert.False(t, m.Status().Running)
}

func TestStopSlideshowDoesNotBlock(t *testing.T) {
	setter := &slowSetter{delay: 300 * time.Millisecond}
	m := newSlowManager(t, setter)

	require.NoError(t, m.StartSlideshow())
	require.Eventually(t, func() bool { return setter.inFlight.Load() == 1 }, time.Second, time.Millisecond)

	started := time.Now()
	m.StopSlideshow()
	assert.Less(t, time.Since(started), 100*time.Millisecond)
}
