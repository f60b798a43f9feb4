//go:build !windows

package autostart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const desktopEntry = `[Desktop Entry]
Type=Application
Name=wallrotate
Comment=Rotate the desktop wallpaper
Exec=%s
Terminal=false
X-GNOME-Autostart-enabled=true
`

func entryPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "autostart", "wallrotate.desktop"), nil
}

// Enabled reports whether the autostart entry exists.
func Enabled() (bool, error) {
	path, err := entryPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to read autostart entry: %w", err)
	}
}

// Enable writes the autostart entry for the current executable.
func Enable() error {
	path, err := entryPath()
	if err != nil {
		return err
	}
	cmd, err := command()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf(desktopEntry, cmd)), 0o644); err != nil {
		return fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return nil
}

// Disable removes the autostart entry if present.
func Disable() error {
	path, err := entryPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove autostart entry: %w", err)
	}
	return nil
}
