package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate"
	"github.com/tidwall/pretty"
)

// CanonicalPath expands a leading ~ to the user's home directory.
func CanonicalPath(path string) string {
	if path == "" {
		return ""
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}

	return path
}

func PrintJSONColored(data any) {
	j, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Errorf("Error marshalling JSON: %v", err)
		return
	}

	jPretty := pretty.Color(j, nil)
	log.Info(string(jPretty))
}

// ConfigDir is the per-user wallrotate configuration directory.
func ConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(CanonicalPath("~"), ".config")
	}
	return filepath.Join(configDir, "wallrotate")
}

// InstallDefaultConfig writes the bundled config unless one already exists.
// It returns the path of the config file.
func InstallDefaultConfig() (string, error) {
	configPath := filepath.Join(ConfigDir(), "wallrotate.toml")

	if _, err := os.Stat(configPath); err == nil {
		log.Warnf("Config file already exists at %v", configPath)
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(configPath, []byte(wallrotate.DefaultConfig), 0o644); err != nil {
		return "", err
	}

	log.Infof("Installed default config file at %v", configPath)
	return configPath, nil
}
