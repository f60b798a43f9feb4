// Package middleware holds echo middleware shared by the control socket.
package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// CharmLog logs each request through the package-level charm logger. Status
// reads are logged at debug level since clients poll them.
func CharmLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			fields := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start).Round(time.Microsecond),
			}

			switch {
			case err != nil:
				log.Error("ipc request failed", append(fields, "err", err)...)
			case req.Method == "GET":
				log.Debug("ipc request", fields...)
			default:
				log.Info("ipc request", fields...)
			}
			return nil
		}
	}
}
