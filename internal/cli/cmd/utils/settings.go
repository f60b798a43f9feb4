package utils

import (
	"fmt"
	"time"

	"github.com/matjam/wallrotate/internal/catalog"
	"github.com/matjam/wallrotate/internal/manager"
	"github.com/matjam/wallrotate/internal/state"
	"github.com/matjam/wallrotate/internal/types"
	"github.com/matjam/wallrotate/internal/wallpaper"
	"github.com/spf13/viper"
)

// DaemonConfig is everything the daemon needs from the resolved config.
type DaemonConfig struct {
	Manager   manager.Settings
	Wallpaper wallpaper.Options
	CacheDir  string
}

// LoadDaemonConfig reads the daemon settings from v.
func LoadDaemonConfig(v *viper.Viper) (DaemonConfig, error) {
	var folders []catalog.Folder
	if err := v.UnmarshalKey("folders", &folders); err != nil {
		return DaemonConfig{}, fmt.Errorf("invalid folders: %w", err)
	}
	for i := range folders {
		folders[i].Path = CanonicalPath(folders[i].Path)
	}

	style, err := types.ParseStyle(v.GetString("style"))
	if err != nil {
		return DaemonConfig{}, err
	}

	interval := time.Duration(v.GetInt("interval")) * time.Second
	if interval <= 0 {
		return DaemonConfig{}, fmt.Errorf("interval must be positive, got %d", v.GetInt("interval"))
	}

	statePath := CanonicalPath(v.GetString("state_file"))
	if statePath == "" {
		statePath = state.DefaultPath()
	}

	return DaemonConfig{
		Manager: manager.Settings{
			Folders:      folders,
			SingleImage:  CanonicalPath(v.GetString("single_image")),
			Exclude:      v.GetStringSlice("exclude"),
			AutoRotate:   v.GetBool("auto_rotate"),
			RandomOrder:  v.GetBool("random_order"),
			Interval:     interval,
			Style:        style,
			PollInterval: time.Duration(v.GetInt("poll_interval_ms")) * time.Millisecond,
			StatePath:    statePath,
		},
		Wallpaper: wallpaper.Options{
			Backend:       types.Backend(v.GetString("backend")),
			CustomCommand: v.GetString("custom_command"),
		},
		CacheDir: CanonicalPath(v.GetString("cache_dir")),
	}, nil
}
