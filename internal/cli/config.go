package cli

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

var cfgFile string

// initConfig resolves the config file, environment and defaults. A missing
// config file is not an error; the defaults describe a usable setup.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wallrotate")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/wallrotate")
		viper.AddConfigPath("/etc/xdg/wallrotate")
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("wallrotate")
	viper.AutomaticEnv() // read environment variables that match

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		log.Debugf("Using config file: %v", viper.ConfigFileUsed())
	case errors.As(err, &notFound):
		log.Debug("No config file found, using defaults")
	default:
		log.Fatalf("Error reading config file: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("folders", []map[string]any{
		{"path": "~/Pictures/wallpapers", "include_subfolders": false},
	})
	v.SetDefault("single_image", "")
	v.SetDefault("exclude", []string{})
	v.SetDefault("auto_rotate", true)
	v.SetDefault("random_order", true)
	v.SetDefault("interval", 600)
	v.SetDefault("style", "fill")
	v.SetDefault("backend", "auto")
	v.SetDefault("custom_command", "")
	v.SetDefault("cache_dir", "")
	v.SetDefault("state_file", "")
	v.SetDefault("poll_interval_ms", 250)
	v.SetDefault("debug", false)
}
