package config

// Config holds the application configuration.
type Config struct {
	CachePath string    `yaml:"cache_path" validate:"required"`
	Logger    Logger    `yaml:"logger"`
	Providers Providers `yaml:"providers"`
	Synths    Synths    `yaml:"synths"`
	Player    Player    `yaml:"player"`
	History   History   `yaml:"history"`
	Watch     Watch     `yaml:"watch"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json logfmt"`
	Path   string `yaml:"path"`
}

// Providers holds the configuration of every preset catalog.
type Providers struct {
	PresetShare PresetShare `yaml:"presetshare"`
}

// PresetShare holds the configuration for the presetshare.com catalog.
type PresetShare struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	SessionID string `yaml:"session_id"`
}

// Synths holds the library location of every supported synth.
type Synths struct {
	Vital SynthLibrary `yaml:"vital"`
	Serum SynthLibrary `yaml:"serum"`
}

// SynthLibrary points at a synth's user preset folder. An empty PresetsDir disables the synth.
type SynthLibrary struct {
	PresetsDir string `yaml:"presets_dir"`
}

// Player holds the external command used to play previews.
type Player struct {
	Command string   `yaml:"command" validate:"required"`
	Args    []string `yaml:"args"`
}

// History holds the configuration of the import history database.
type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// Watch holds the configuration of the cache watcher used by the browser.
type Watch struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms" validate:"gte=0"`
}
