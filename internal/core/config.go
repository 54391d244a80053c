package core

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the durable-state settings that are not per-invocation flags.
type Config struct {
	// Directory for the state file holding the session token and cached
	// preferences. Defaults to ~/.config/redlytics.
	StateDir string `envconfig:"STATE_DIR"`

	StateFile string `envconfig:"STATE_FILE" default:"state.json"`
}

func (c *Config) Init(_ context.Context) error {
	if err := envconfig.Process("redlytics", c); err != nil {
		return err
	}

	if c.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.StateDir = filepath.Join(home, ".config", "redlytics")
	}

	return nil
}

// StatePath is the full path of the state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir, c.StateFile)
}
