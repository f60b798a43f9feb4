// Package wallpaper applies images and scaling styles to the desktop.
package wallpaper

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate/internal/types"
)

var (
	ErrUnknownBackend   = errors.New("unknown wallpaper backend")
	ErrUnsupportedStyle = errors.New("style not supported by backend")
)

// Setter is implemented by every backend.
type Setter interface {
	SetStyle(style types.StyleMode) error
	SetWallpaper(path string) error
}

type Options struct {
	Backend types.Backend
	// CustomCommand is run by the custom backend. %f is replaced with the
	// image path and %s with the style.
	CustomCommand string
}

// Runner executes external tools. Start must not wait for the process.
type Runner interface {
	Run(name string, args ...string) error
	Start(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	log.Debugf("exec %s %s", name, strings.Join(args, " "))
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w (output: %s)", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (execRunner) Start(name string, args ...string) error {
	log.Debugf("spawn %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s failed to start: %w", name, err)
	}
	return cmd.Process.Release()
}

// New returns the setter for opts.Backend, detecting one when it is auto or empty.
func New(opts Options) (Setter, error) {
	return newSetter(opts, execRunner{})
}

func newSetter(opts Options, run Runner) (Setter, error) {
	backend := opts.Backend
	if backend == "" || backend == types.BackendAuto {
		backend = Detect(runtime.GOOS, os.Getenv)
		log.Infof("Using %s wallpaper backend", backend)
	}

	switch backend {
	case types.BackendWindows:
		return newWindowsSetter()
	case types.BackendCustom:
		if strings.TrimSpace(opts.CustomCommand) == "" {
			return nil, errors.New("custom backend needs custom_command")
		}
		fallthrough
	case types.BackendGnome, types.BackendFeh, types.BackendSwaybg, types.BackendSwww, types.BackendOsascript:
		return &execSetter{
			backend: backend,
			run:     run,
			style:   types.StyleFill,
			custom:  opts.CustomCommand,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// Detect picks a backend from the OS and desktop session variables.
func Detect(goos string, getenv func(string) string) types.Backend {
	switch goos {
	case "windows":
		return types.BackendWindows
	case "darwin":
		return types.BackendOsascript
	}

	desktop := getenv("XDG_CURRENT_DESKTOP")
	if desktop == "" {
		desktop = getenv("DESKTOP_SESSION")
	}
	desktop = strings.ToLower(desktop)

	gnomeLike := strings.Contains(desktop, "gnome") ||
		strings.Contains(desktop, "unity") ||
		strings.Contains(desktop, "cinnamon") ||
		strings.Contains(desktop, "budgie")

	if getenv("WAYLAND_DISPLAY") != "" {
		switch {
		case gnomeLike:
			return types.BackendGnome
		case strings.Contains(desktop, "sway"):
			return types.BackendSwaybg
		default:
			return types.BackendSwww
		}
	}

	if gnomeLike {
		return types.BackendGnome
	}
	return types.BackendFeh
}
