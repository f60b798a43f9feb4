package ipc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matjam/wallrotate/internal/manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	mu       sync.Mutex
	calls    []string
	loaded   []string
	startErr error
	nextErr  error
}

func (f *fakeManager) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeManager) Status() manager.Status {
	return manager.Status{Running: true, Status: "Set: /a.png", LastImage: "/a.png", ImageCount: 3}
}

func (f *fakeManager) CurrentWallpaper() string { return "/a.png" }

func (f *fakeManager) StartSlideshow() error {
	f.record("start")
	return f.startErr
}

func (f *fakeManager) StopSlideshow() { f.record("stop") }

func (f *fakeManager) Next() error {
	f.record("next")
	return f.nextErr
}

func (f *fakeManager) Load(paths []string) error {
	f.record("load")
	f.loaded = paths
	return nil
}

func (f *fakeManager) Quit() { f.record("quit") }

func serve(t *testing.T, m ManagerInterface, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewServer(m).ServeHTTP(rec, req)
	return rec
}

func TestControlRoutes(t *testing.T) {
	m := &fakeManager{}
	for _, route := range []string{"/start", "/stop", "/next", "/quit"} {
		rec := serve(t, m, http.MethodPost, route, "")
		assert.Equal(t, http.StatusOK, rec.Code, route)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String(), route)
	}
	assert.Equal(t, []string{"start", "stop", "next", "quit"}, m.calls)
}

func TestStatusRoute(t *testing.T) {
	rec := serve(t, &fakeManager{}, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current_wallpaper": "/a.png"`)
	assert.Contains(t, rec.Body.String(), `"image_count": 3`)
}

func TestManagerErrorsAreConflicts(t *testing.T) {
	m := &fakeManager{startErr: manager.ErrNoImages, nextErr: errors.New("boom")}

	rec := serve(t, m, http.MethodPost, "/start", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"no images found in the selected folders"}`, rec.Body.String())

	rec = serve(t, m, http.MethodPost, "/next", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoadRoute(t *testing.T) {
	m := &fakeManager{}

	rec := serve(t, m, http.MethodPost, "/load", `["/pics","/more/one.jpg"]`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"/pics", "/more/one.jpg"}, m.loaded)

	rec = serve(t, m, http.MethodPost, "/load", `{"not":"a list"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientOverSocket(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	m := &fakeManager{nextErr: errors.New("no images found in the selected folders")}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, m) }()

	require.Eventually(t, func() bool {
		_, err := SendStatus()
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	status, err := SendStatus()
	require.NoError(t, err)
	assert.Equal(t, "/a.png", status.CurrentWallpaper)
	assert.True(t, status.Slideshow.Running)

	require.NoError(t, SendStop())
	require.NoError(t, SendLoad([]string{"/pics"}))
	assert.EqualError(t, SendNext(), "no images found in the selected folders")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.NoFileExists(t, SocketPath())
}

func TestClientWithoutDaemon(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	_, err := SendStatus()
	assert.ErrorIs(t, err, ErrDaemonNotRunning)
}
