//go:build windows

package wallpaper

import (
	"fmt"
	"unsafe"

	"github.com/matjam/wallrotate/internal/types"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

// windowsSetter uses the registry for styles and SystemParametersInfoW for images.
type windowsSetter struct {
	proc *windows.LazyProc
}

func newWindowsSetter() (Setter, error) {
	user32 := windows.NewLazySystemDLL("user32.dll")
	return &windowsSetter{proc: user32.NewProc("SystemParametersInfoW")}, nil
}

func (s *windowsSetter) SetStyle(style types.StyleMode) error {
	v, ok := windowsStyles[style]
	if !ok {
		return fmt.Errorf("%w: windows cannot %s", ErrUnsupportedStyle, style)
	}

	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening desktop registry key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue("WallpaperStyle", v.style); err != nil {
		return fmt.Errorf("setting WallpaperStyle: %w", err)
	}
	if err := k.SetStringValue("TileWallpaper", v.tile); err != nil {
		return fmt.Errorf("setting TileWallpaper: %w", err)
	}
	return nil
}

func (s *windowsSetter) SetWallpaper(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	ret, _, callErr := s.proc.Call(
		uintptr(spiSetDeskWallpaper),
		0,
		uintptr(unsafe.Pointer(p)),
		uintptr(spifUpdateIniFile|spifSendChange),
	)
	if ret == 0 {
		return fmt.Errorf("SystemParametersInfoW failed: %w", callErr)
	}
	return nil
}
