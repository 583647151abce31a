package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manager holds the loaded configuration. The configuration is read once and handed
// out as a snapshot; components receive the values they need at construction.
type Manager struct {
	config *Config
}

// NewManager creates a new Manager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	cfg := *m.config
	cfg.Player.Args = append([]string(nil), m.config.Player.Args...)
	return cfg
}

// WithSession returns a manager whose presetshare session id is replaced, leaving m untouched.
func (m *Manager) WithSession(sessionID string) *Manager {
	if sessionID == "" {
		return m
	}
	cfg := m.Get()
	cfg.Providers.PresetShare.SessionID = sessionID
	return NewManager(&cfg)
}

// EnsureDirectories creates the cache directory and every configured synth library.
func (m *Manager) EnsureDirectories() error {
	cfg := m.config

	dirs := []string{cfg.CachePath, cfg.Synths.Vital.PresetsDir, cfg.Synths.Serum.PresetsDir}
	if cfg.History.Enabled {
		dirs = append(dirs, filepath.Dir(cfg.History.Path))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	slog.Debug("Required directories created/verified", "cache", cfg.CachePath, "vital", cfg.Synths.Vital.PresetsDir, "serum", cfg.Synths.Serum.PresetsDir)
	return nil
}

// redactedCfg gets a redacted copy of the Config
func (m *Manager) redactedCfg() Config {
	cfgCpy := m.Get()
	if cfgCpy.Providers.PresetShare.SessionID != "" {
		cfgCpy.Providers.PresetShare.SessionID = "<redacted>"
	}
	return cfgCpy
}

// GetYAML returns the current configuration as YAML with secrets redacted.
func (m *Manager) GetYAML() string {
	yamlBytes, err := yaml.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to YAML", "error", err)
		return err.Error()
	}
	return string(yamlBytes)
}
