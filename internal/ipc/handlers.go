package ipc

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/matjam/wallrotate"
	"github.com/spf13/viper"
)

func ok(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{Status: "ok"})
}

func conflict(c echo.Context, err error) error {
	return c.JSON(http.StatusConflict, Response{Status: "error", Message: err.Error()})
}

// GET /status
func statusHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, StatusResponse{
			Status:           "ok",
			Message:          "wallrotate is running",
			Version:          strings.Trim(wallrotate.Version, "\n\r "),
			PID:              os.Getpid(),
			Socket:           SocketPath(),
			Config:           viper.ConfigFileUsed(),
			CurrentWallpaper: m.CurrentWallpaper(),
			Slideshow:        m.Status(),
		}, "  ")
	}
}

// POST /start
func startHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := m.StartSlideshow(); err != nil {
			return conflict(c, err)
		}
		return ok(c)
	}
}

// POST /stop
func stopHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.StopSlideshow()
		return ok(c)
	}
}

// POST /next
func nextHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := m.Next(); err != nil {
			return conflict(c, err)
		}
		return ok(c)
	}
}

// POST /load
func loadHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var paths []string
		if err := c.Bind(&paths); err != nil {
			return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "invalid JSON array of paths"})
		}

		if err := m.Load(paths); err != nil {
			return conflict(c, err)
		}

		return c.JSON(http.StatusOK, Response{
			Status: "ok",
			Data:   map[string]int{"loaded": len(paths)},
		})
	}
}

// POST /quit
func quitHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.Quit()
		return ok(c)
	}
}
