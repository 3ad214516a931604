// Package engineconfig loads and saves sandbox preferences: window and
// overlay settings, population ceilings, the spawn volume, and logging.
package engineconfig

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"physics-sandbox/internal/budget"
)

// ConfigPath is the config file location, relative to the process working
// directory (project root when run via go run ./cmd/sandbox).
const ConfigPath = "config/sandbox.yaml"

// LoggingConfig selects the structured-log level and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // "json" or "console"
}

// Config holds every persisted preference. In-scene state is never saved;
// a restart always begins with an empty world.
type Config struct {
	Fullscreen   bool               `yaml:"fullscreen"`
	GridVisible  bool               `yaml:"grid_visible"`
	ShowFPS      bool               `yaml:"show_fps"`
	ShowMemAlloc bool               `yaml:"show_memalloc"`
	Limits       budget.Limits      `yaml:"limits"`
	SpawnVolume  budget.SpawnVolume `yaml:"spawn_volume"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// Default returns the stock configuration: windowed, grid on, overlays off,
// default ceilings and spawn volume, console logging at info.
func Default() Config {
	return Config{
		GridVisible: true,
		Limits:      budget.DefaultLimits(),
		SpawnVolume: budget.DefaultSpawnVolume(),
		Logging:     LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads the config file. A missing or invalid file yields Default()
// without creating anything; ceilings are normalized either way.
func Load() (Config, error) {
	data, err := os.ReadFile(ConfigPath)
	if err != nil {
		return Default(), nil
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), nil
	}
	cfg.Limits.Normalize()
	return cfg, nil
}

// Save writes the config file, creating the config directory if needed.
func Save(cfg Config) error {
	dir := filepath.Dir(ConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath, data, 0644)
}
