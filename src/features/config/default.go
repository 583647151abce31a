package config

import (
	"os"
	"path/filepath"
)

// defaultConfig creates a new Config with sensible default values
func defaultConfig() *Config {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return &Config{
		CachePath: filepath.Join(os.TempDir(), "preset-cli"),
		Logger: Logger{
			Level:  "info",
			Format: "text",
		},
		Providers: Providers{
			PresetShare: PresetShare{
				BaseURL: "https://presetshare.com",
			},
		},
		Synths: Synths{
			Vital: SynthLibrary{
				PresetsDir: "~/Music/Vital",
			},
		},
		Player: Player{
			Command: "ffplay",
			Args:    []string{"-nodisp", "-autoexit", "-loglevel", "quiet"},
		},
		History: History{
			Enabled: true,
			Path:    filepath.Join(configDir, "presetcli", "history.db"),
		},
		Watch: Watch{
			Enabled:    true,
			DebounceMS: 500,
		},
	}
}
