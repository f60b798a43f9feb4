// Package autostart registers wallrotate to start its daemon at login.
//
// Enabled, Enable and Disable are implemented per platform: an XDG autostart
// desktop entry on unix and the per-user Run registry key on Windows.
package autostart

import (
	"fmt"
	"os"
)

// launchArgs are appended to the executable path in the login entry.
var launchArgs = []string{"daemon", "-b"}

// command returns the quoted command line that launches the daemon.
func command() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current executable: %w", err)
	}

	cmd := `"` + exe + `"`
	for _, arg := range launchArgs {
		cmd += " " + arg
	}
	return cmd, nil
}
