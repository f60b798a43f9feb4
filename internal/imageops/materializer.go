// Package imageops decodes, reorients and re-encodes images into the cache
// files handed to the desktop.
package imageops

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	// decoders imaging does not register itself
	_ "golang.org/x/image/webp"
)

const appDir = "wallrotate"

// Materializer writes display-ready copies of catalog images.
//
// Output alternates between two cache slots. Some desktops skip the refresh
// when asked to apply the path they already show.
type Materializer struct {
	CacheDir string
	Format   imaging.Format

	mu   sync.Mutex
	slot int
}

// NewMaterializer uses cacheDir, or the user cache directory when empty.
// Windows gets BMP output, everything else PNG.
func NewMaterializer(cacheDir string) (*Materializer, error) {
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine cache directory: %w", err)
		}
		cacheDir = filepath.Join(base, appDir)
	}

	format := imaging.PNG
	if runtime.GOOS == "windows" {
		format = imaging.BMP
	}

	return &Materializer{CacheDir: cacheDir, Format: format}, nil
}

// Materialize decodes src, honours EXIF orientation, turns portrait images
// to landscape when autoRotate is set, and returns the written cache path.
func (m *Materializer) Materialize(src string, autoRotate bool) (string, error) {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}

	if autoRotate {
		img = Landscape(img)
	}

	if err := os.MkdirAll(m.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", m.CacheDir, err)
	}

	dst := m.nextPath()
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := imaging.Encode(f, img, m.Format); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}

	log.Debugf("materialized %s -> %s (%dx%d)", src, dst, img.Bounds().Dx(), img.Bounds().Dy())
	return dst, nil
}

// Landscape rotates a portrait image 90 degrees clockwise.
func Landscape(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() >= b.Dy() {
		return img
	}
	return imaging.Rotate270(img)
}

func (m *Materializer) nextPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := filepath.Join(m.CacheDir, fmt.Sprintf("current-%d.%s", m.slot, extension(m.Format)))
	m.slot = 1 - m.slot
	return p
}

func extension(f imaging.Format) string {
	switch f {
	case imaging.JPEG:
		return "jpg"
	case imaging.PNG:
		return "png"
	case imaging.GIF:
		return "gif"
	case imaging.TIFF:
		return "tiff"
	case imaging.BMP:
		return "bmp"
	default:
		return "png"
	}
}
