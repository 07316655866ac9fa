package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/fitsel/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Server     string

	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fitsel", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/fitsel/fitsel.log
// On Linux: $XDG_STATE_HOME/fitsel/fitsel.log (defaults to ~/.local/state/fitsel/fitsel.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "fitsel", "fitsel.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "fitsel", "fitsel.log")
	}

	return filepath.Join(home, ".local", "state", "fitsel", "fitsel.log")
}

// LoadConfig loads the config file and applies command line overrides.
func (f *Flags) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if f.Server != "" {
		cfg.Server.BaseURL = f.Server
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	f.Config = cfg
	return cfg, nil
}
