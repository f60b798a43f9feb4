//go:build !windows

package cmd

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate/internal/cli/cmd/utils"
	daemon "github.com/sevlyar/go-daemon"
)

// daemonize re-launches the current command detached from the terminal.
// It reports true in the parent, which should exit. The child calls release
// when it is done to drop its pid file.
func daemonize() (bool, func(), error) {
	runDir := filepath.Join(utils.CanonicalPath("~"), ".local", "share", "wallrotate")
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return false, nil, err
	}

	ctx := &daemon.Context{
		PidFileName: filepath.Join(runDir, "wallrotate.pid"),
		PidFilePerm: 0o644,
		WorkDir:     "/",
		Umask:       0o027,
		Env:         append(os.Environ(), backgroundEnv+"=1"),
	}

	child, err := ctx.Reborn()
	if err != nil {
		return false, nil, err
	}
	if child != nil {
		log.Infof("wallrotate daemon started in the background (PID %d)", child.Pid)
		return true, nil, nil
	}

	return false, func() {
		if err := ctx.Release(); err != nil {
			log.Warnf("failed to release pid file: %v", err)
		}
	}, nil
}
