//go:build windows

package cmd

import "github.com/charmbracelet/log"

// daemonize is a no-op on Windows, where the daemon is started at login
// through the Run registry key and keeps running in the foreground.
func daemonize() (bool, func(), error) {
	log.Warn("Background mode is not supported on Windows, running in the foreground")
	return false, func() {}, nil
}
