package ipc

import (
	"os"
	"path/filepath"
)

const socketName = "wallrotate.sock"

// SocketPath is where the daemon listens.
func SocketPath() string {
	sockDir := os.Getenv("XDG_RUNTIME_DIR")
	if sockDir == "" {
		sockDir = os.TempDir()
	}
	return filepath.Join(sockDir, socketName)
}
