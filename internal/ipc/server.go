package ipc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/matjam/wallrotate/internal/middleware"
)

// NewServer returns an echo instance with the control routes registered.
func NewServer(manager ManagerInterface) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.CharmLog())

	RegisterRoutes(e, manager)
	return e
}

// Serve listens on the control socket until ctx is cancelled. A stale socket
// file left by a previous run is removed first, and the socket is removed on
// the way out.
func Serve(ctx context.Context, manager ManagerInterface) error {
	sockPath := SocketPath()

	if _, err := os.Stat(sockPath); err == nil {
		_ = os.Remove(sockPath)
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		return err
	}
	defer os.Remove(sockPath)

	e := NewServer(manager)
	e.Listener = listener

	errc := make(chan error, 1)
	go func() {
		errc <- e.StartServer(e.Server)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}
