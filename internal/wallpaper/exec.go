package wallpaper

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate/internal/types"
)

// execSetter drives desktop tools on the command line.
type execSetter struct {
	backend types.Backend
	run     Runner
	custom  string

	mu    sync.Mutex
	style types.StyleMode
}

func (s *execSetter) SetStyle(style types.StyleMode) error {
	if !s.supports(style) {
		return fmt.Errorf("%w: %s cannot %s", ErrUnsupportedStyle, s.backend, style)
	}
	s.mu.Lock()
	s.style = style
	s.mu.Unlock()

	if s.backend == types.BackendGnome {
		return s.run.Run("gsettings", "set", "org.gnome.desktop.background", "picture-options", gnomeOptions[style])
	}
	return nil
}

func (s *execSetter) supports(style types.StyleMode) bool {
	switch s.backend {
	case types.BackendGnome:
		_, ok := gnomeOptions[style]
		return ok
	case types.BackendFeh:
		_, ok := fehFlags[style]
		return ok
	case types.BackendSwaybg:
		_, ok := swaybgModes[style]
		return ok
	case types.BackendSwww:
		_, ok := swwwResize[style]
		return ok
	default:
		return true
	}
}

func (s *execSetter) currentStyle() types.StyleMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

func (s *execSetter) SetWallpaper(path string) error {
	style := s.currentStyle()

	switch s.backend {
	case types.BackendGnome:
		uri := fileURI(path)
		if err := s.run.Run("gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri); err != nil {
			return err
		}
		return s.run.Run("gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri)

	case types.BackendFeh:
		args := append([]string{"--no-fehbg"}, fehFlags[style]...)
		return s.run.Run("feh", append(args, path)...)

	case types.BackendSwaybg:
		// swaybg keeps running to hold the image, so replace any previous instance.
		_ = s.run.Run("pkill", "-x", "swaybg")
		return s.run.Start("swaybg", "-i", path, "-m", swaybgModes[style])

	case types.BackendSwww:
		return s.run.Run("swww", "img", path, "--resize", swwwResize[style])

	case types.BackendOsascript:
		log.Debugf("osascript backend ignores style %s", style)
		script := fmt.Sprintf(`tell application "System Events"
	tell every desktop
		set picture to %q
	end tell
end tell`, path)
		return s.run.Run("osascript", "-e", script)

	case types.BackendCustom:
		return s.runCustom(path, style)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, s.backend)
	}
}

func (s *execSetter) runCustom(path string, style types.StyleMode) error {
	parts := strings.Fields(s.custom)
	if len(parts) == 0 {
		return fmt.Errorf("invalid custom command")
	}
	for i, p := range parts {
		p = strings.ReplaceAll(p, "%f", path)
		parts[i] = strings.ReplaceAll(p, "%s", string(style))
	}
	return s.run.Run(parts[0], parts[1:]...)
}

// fileURI escapes path so names containing '#', '?' or '%' survive.
func fileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: path}).String()
}
