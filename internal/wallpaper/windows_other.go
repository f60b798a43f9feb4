//go:build !windows

package wallpaper

import "errors"

func newWindowsSetter() (Setter, error) {
	return nil, errors.New("windows backend is only available on Windows")
}
