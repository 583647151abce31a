package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SessionEnv overrides the presetshare session id when set.
const SessionEnv = "PRESETSHARE_SESSION"

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "presetcli", "config.yaml")
}

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	var cfg *Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		cfg = defaultConfig()
		if err := saveDefaultConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		cfg = defaultConfig()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	// Override with environment variables if set
	if session := os.Getenv(SessionEnv); session != "" {
		cfg.Providers.PresetShare.SessionID = session
	}

	if err := expandPaths(cfg); err != nil {
		return nil, err
	}

	return NewManager(cfg), nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Synths.Vital.PresetsDir == "" && cfg.Synths.Serum.PresetsDir == "" {
		return errors.New("config validation failed: at least one synth presets_dir is required")
	}
	return nil
}

// expandPaths resolves a leading ~ in every configured path.
func expandPaths(cfg *Config) error {
	paths := []*string{
		&cfg.CachePath,
		&cfg.Logger.Path,
		&cfg.Synths.Vital.PresetsDir,
		&cfg.Synths.Serum.PresetsDir,
		&cfg.History.Path,
	}
	for _, p := range paths {
		expanded, err := ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ExpandHome replaces a leading ~ with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}
