//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	runKey   = `Software\Microsoft\Windows\CurrentVersion\Run`
	runValue = "Wallrotate"
)

// Enabled reports whether the Run registry value is present.
func Enabled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("failed to open startup registry key: %w", err)
	}
	defer k.Close()

	_, _, err = k.GetStringValue(runValue)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, registry.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to read startup registry value: %w", err)
	}
}

// Enable registers the current executable to run at login.
func Enable() error {
	cmd, err := command()
	if err != nil {
		return err
	}

	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open startup registry key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue(runValue, cmd); err != nil {
		return fmt.Errorf("failed to set startup registry value: %w", err)
	}
	return nil
}

// Disable removes the Run registry value if present.
func Disable() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open startup registry key: %w", err)
	}
	defer k.Close()

	if err := k.DeleteValue(runValue); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to remove startup registry value: %w", err)
	}
	return nil
}
