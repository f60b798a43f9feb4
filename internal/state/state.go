// Package state persists what the daemon was doing so a restart can resume it.
// State lives in $XDG_STATE_HOME/wallrotate/state.toml.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

// State is the runtime state saved between daemon runs.
type State struct {
	Running   bool      `toml:"running"`
	Status    string    `toml:"status"`
	LastImage string    `toml:"last_image"`
	UpdatedAt time.Time `toml:"updated_at"`
}

// DefaultPath returns the state file location for the current user.
func DefaultPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "wallrotate", "state.toml")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "wallrotate", "state.toml")
}

// Load reads the state file. A missing or unreadable file yields the zero State.
func Load(path string) State {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warnf("reading state %s: %v", path, err)
		}
		return State{}
	}

	var s State
	if err := toml.Unmarshal(data, &s); err != nil {
		log.Warnf("ignoring corrupt state file %s: %v", path, err)
		return State{}
	}
	return s
}

// Save writes s to path, creating directories as needed.
func Save(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	s.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
