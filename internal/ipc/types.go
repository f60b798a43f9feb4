package ipc

import "github.com/matjam/wallrotate/internal/manager"

// ManagerInterface is the part of the manager the socket server drives.
type ManagerInterface interface {
	Status() manager.Status
	CurrentWallpaper() string
	StartSlideshow() error
	StopSlideshow()
	Next() error
	Load(paths []string) error
	Quit()
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type StatusResponse struct {
	Status           string         `json:"status"`
	Message          string         `json:"message"`
	Version          string         `json:"version"`
	PID              int            `json:"pid"`
	Socket           string         `json:"socket"`
	Config           string         `json:"config"`
	CurrentWallpaper string         `json:"current_wallpaper"`
	Slideshow        manager.Status `json:"slideshow"`
}
