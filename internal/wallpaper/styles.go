package wallpaper

import "github.com/matjam/wallrotate/internal/types"

var gnomeOptions = map[types.StyleMode]string{
	types.StyleFill:    "zoom",
	types.StyleFit:     "scaled",
	types.StyleStretch: "stretched",
	types.StyleTile:    "wallpaper",
	types.StyleCenter:  "centered",
	types.StyleSpan:    "spanned",
}

var fehFlags = map[types.StyleMode][]string{
	types.StyleFill:    {"--bg-fill"},
	types.StyleFit:     {"--bg-max"},
	types.StyleStretch: {"--bg-scale"},
	types.StyleTile:    {"--bg-tile"},
	types.StyleCenter:  {"--bg-center"},
	types.StyleSpan:    {"--no-xinerama", "--bg-fill"},
}

var swaybgModes = map[types.StyleMode]string{
	types.StyleFill:    "fill",
	types.StyleFit:     "fit",
	types.StyleStretch: "stretch",
	types.StyleTile:    "tile",
	types.StyleCenter:  "center",
}

var swwwResize = map[types.StyleMode]string{
	types.StyleFill:   "crop",
	types.StyleFit:    "fit",
	types.StyleCenter: "no",
}

// windowsStyle holds the WallpaperStyle and TileWallpaper registry values.
type windowsStyle struct {
	style string
	tile  string
}

var windowsStyles = map[types.StyleMode]windowsStyle{
	types.StyleFill:    {"10", "0"},
	types.StyleFit:     {"6", "0"},
	types.StyleStretch: {"2", "0"},
	types.StyleTile:    {"0", "1"},
	types.StyleCenter:  {"0", "0"},
	types.StyleSpan:    {"22", "0"},
}
