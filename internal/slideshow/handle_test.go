package slideshow

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matjam/wallrotate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSetter struct {
	mu       sync.Mutex
	styles   []types.StyleMode
	applied  []string
	styleErr error
	failOn   int // 1-based SetWallpaper call that fails, 0 never
}

func (f *fakeSetter) SetStyle(style types.StyleMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.styles = append(f.styles, style)
	return f.styleErr
}

func (f *fakeSetter) SetWallpaper(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, path)
	if f.failOn > 0 && len(f.applied) == f.failOn {
		return errors.New("desktop refused the image")
	}
	return nil
}

func (f *fakeSetter) appliedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

func (f *fakeSetter) styleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.styles)
}

type fakeMaterializer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeMaterializer) Materialize(src string, autoRotate bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "/cache/" + src, nil
}

func testOptions(interval time.Duration) Options {
	return Options{
		Style:    types.StyleFill,
		Interval: interval,
		Mode:     types.SelectionSequential,
		Slice:    10 * time.Millisecond,
	}
}

// collect drains h until n events have arrived.
func collect(t *testing.T, h *Handle, n int, within time.Duration) []Event {
	t.Helper()
	var events []Event
	require.Eventually(t, func() bool {
		events = h.DrainEvents(events)
		return len(events) >= n
	}, within, 5*time.Millisecond)
	return events
}

func waitDone(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit")
	}
}

func TestStartRejectsEmptyCatalog(t *testing.T) {
	setter := &fakeSetter{}
	h, err := Start(nil, &fakeMaterializer{}, setter, testOptions(time.Second))

	require.ErrorIs(t, err, ErrEmptyCatalog)
	assert.Nil(t, h)
	assert.Zero(t, setter.styleCount())
}

func TestStartFailsWhenStyleFails(t *testing.T) {
	setter := &fakeSetter{styleErr: errors.New("registry locked")}
	m := &fakeMaterializer{}
	h, err := Start([]string{"a"}, m, setter, testOptions(time.Second))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry locked")
	assert.Nil(t, h)

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, setter.appliedCount())
	assert.Zero(t, m.calls)
}

func TestWorkerAppliesStyleThenFirstImage(t *testing.T) {
	setter := &fakeSetter{}
	h, err := Start([]string{"a", "b"}, &fakeMaterializer{}, setter, testOptions(time.Hour))
	require.NoError(t, err)
	defer h.Stop()

	events := collect(t, h, 1, time.Second)
	assert.Equal(t, Event{Kind: EventInfo, Text: "Set: a"}, events[0])
	assert.Equal(t, []types.StyleMode{types.StyleFill}, setter.styles)
}

func TestStopHaltsEmission(t *testing.T) {
	setter := &fakeSetter{}
	h, err := Start([]string{"a", "b"}, &fakeMaterializer{}, setter, testOptions(time.Hour))
	require.NoError(t, err)

	collect(t, h, 1, time.Second)

	h.Stop()
	waitDone(t, h)

	assert.Empty(t, h.DrainEvents(nil))
	assert.Equal(t, 1, setter.appliedCount())

	h.RequestNext()
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, h.DrainEvents(nil))
}

func TestStopReturnsPromptly(t *testing.T) {
	h, err := Start([]string{"a"}, &fakeMaterializer{}, &fakeSetter{}, testOptions(time.Hour))
	require.NoError(t, err)

	began := time.Now()
	h.Stop()
	h.Stop()
	assert.Less(t, time.Since(began), 50*time.Millisecond)
	waitDone(t, h)
}

func TestAdvanceNowShortensWait(t *testing.T) {
	opts := testOptions(10 * time.Second)
	opts.Slice = DefaultSlice
	h, err := Start([]string{"a", "b", "c"}, &fakeMaterializer{}, &fakeSetter{}, opts)
	require.NoError(t, err)
	defer h.Stop()

	collect(t, h, 1, time.Second)

	time.Sleep(time.Second)
	sent := time.Now()
	h.RequestNext()

	events := collect(t, h, 1, 2*time.Second)
	assert.Less(t, time.Since(sent), time.Second)
	assert.Equal(t, "Set: b", events[0].Text)
	assert.Equal(t, "b", events[0].Image)
}

func TestApplyFailureIsTerminal(t *testing.T) {
	setter := &fakeSetter{failOn: 3}
	h, err := Start([]string{"a", "b"}, &fakeMaterializer{}, setter, testOptions(5*time.Millisecond))
	require.NoError(t, err)

	waitDone(t, h)
	events := h.DrainEvents(nil)

	require.Len(t, events, 3)
	assert.Equal(t, EventInfo, events[0].Kind)
	assert.Equal(t, EventInfo, events[1].Kind)
	assert.Equal(t, Event{Kind: EventError, Text: "desktop refused the image"}, events[2])
	assert.Equal(t, 3, setter.appliedCount())
}

func TestMaterializeFailureIsReported(t *testing.T) {
	setter := &fakeSetter{}
	m := &fakeMaterializer{err: errors.New("failed to open a: unexpected EOF")}
	h, err := Start([]string{"a"}, m, setter, testOptions(time.Hour))
	require.NoError(t, err)

	waitDone(t, h)
	events := h.DrainEvents(nil)

	require.Len(t, events, 1)
	assert.Equal(t, Event{Kind: EventError, Text: "failed to open a: unexpected EOF"}, events[0])
	assert.Zero(t, setter.appliedCount())
}

func TestSingleImageReappliedEachInterval(t *testing.T) {
	setter := &fakeSetter{}
	h, err := Start([]string{"only"}, &fakeMaterializer{}, setter, testOptions(5*time.Millisecond))
	require.NoError(t, err)

	events := collect(t, h, 3, time.Second)
	h.Stop()
	waitDone(t, h)

	for _, e := range events {
		assert.Equal(t, Event{Kind: EventInfo, Text: "Set: only"}, e)
	}
}

func TestCatalogIsCopied(t *testing.T) {
	catalog := []string{"a", "b"}
	setter := &fakeSetter{}
	h, err := Start(catalog, &fakeMaterializer{}, setter, testOptions(time.Hour))
	require.NoError(t, err)
	defer h.Stop()

	catalog[0] = "mutated"
	events := collect(t, h, 1, time.Second)
	assert.Equal(t, "Set: a", events[0].Text)
}
