// Package catalog discovers the images a slideshow can show.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedImage is returned when the single image is not an image we can decode.
var ErrUnsupportedImage = errors.New("not a supported image")

// supportedExtensions is the set of file types the materializer can decode.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Folder is one directory to scan.
type Folder struct {
	Path              string `mapstructure:"path" json:"path"`
	IncludeSubfolders bool   `mapstructure:"include_subfolders" json:"include_subfolders"`
}

type Options struct {
	Folders     []Folder
	SingleImage string
	// Exclude holds doublestar patterns matched against the path relative
	// to each folder and against the file name.
	Exclude []string
}

// IsSupported reports whether path has a supported image extension.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Build scans every folder and returns a sorted, deduplicated list of image
// paths. An empty result is not an error.
func Build(ctx context.Context, opts Options) ([]string, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	results := make([][]string, len(opts.Folders))
	g, ctx := errgroup.WithContext(ctx)
	for i, folder := range opts.Folders {
		g.Go(func() error {
			found, err := scan(ctx, folder, opts.Exclude)
			if err != nil {
				return fmt.Errorf("scanning %s: %w", folder.Path, err)
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var images []string
	for _, found := range results {
		images = append(images, found...)
	}

	if opts.SingleImage != "" {
		if !IsSupported(opts.SingleImage) {
			return nil, fmt.Errorf("selected file %s: %w", opts.SingleImage, ErrUnsupportedImage)
		}
		images = append(images, opts.SingleImage)
	}

	slices.Sort(images)
	images = slices.Compact(images)

	log.Debugf("catalog built: %d images from %d folders", len(images), len(opts.Folders))
	return images, nil
}

func scan(ctx context.Context, folder Folder, exclude []string) ([]string, error) {
	// Resolve a symlinked root so WalkDir descends into it.
	root, err := filepath.EvalSymlinks(folder.Path)
	if err != nil {
		return nil, err
	}

	var images []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && !folder.IncludeSubfolders {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() && !isFileLink(path, d) {
			return nil
		}
		if !IsSupported(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if excluded(filepath.ToSlash(rel), exclude) {
			return nil
		}

		images = append(images, filepath.Join(folder.Path, rel))
		return nil
	})
	return images, err
}

// isFileLink reports whether d is a symlink pointing at a regular file.
func isFileLink(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func excluded(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
