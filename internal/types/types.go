package types

import (
	"fmt"
	"strings"
)

// StyleMode is how the desktop scales the applied image.
type StyleMode string

const (
	StyleFill    StyleMode = "fill"
	StyleFit     StyleMode = "fit"
	StyleStretch StyleMode = "stretch"
	StyleTile    StyleMode = "tile"
	StyleCenter  StyleMode = "center"
	StyleSpan    StyleMode = "span"
)

// AllStyles lists every supported style in display order.
var AllStyles = []StyleMode{StyleFill, StyleFit, StyleStretch, StyleTile, StyleCenter, StyleSpan}

// ParseStyle accepts any case and returns the matching StyleMode.
func ParseStyle(s string) (StyleMode, error) {
	mode := StyleMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range AllStyles {
		if m == mode {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown style %q", s)
}

type SelectionMode string

const (
	SelectionSequential SelectionMode = "sequential"
	SelectionRandom     SelectionMode = "random"
)

// SelectionFromRandom maps the random_order setting onto a SelectionMode.
func SelectionFromRandom(random bool) SelectionMode {
	if random {
		return SelectionRandom
	}
	return SelectionSequential
}

type Backend string

const (
	BackendAuto      Backend = "auto"
	BackendGnome     Backend = "gnome"
	BackendFeh       Backend = "feh"
	BackendSwaybg    Backend = "swaybg"
	BackendSwww      Backend = "swww"
	BackendOsascript Backend = "osascript"
	BackendWindows   Backend = "windows"
	BackendCustom    Backend = "custom"
)
