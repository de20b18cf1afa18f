// Package config handles refresh configuration loading and management.
package config

// Config holds all refresh settings.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RegistryConfig bounds the model registry. The limits are fixed for the
// lifetime of the process; there is no dynamic growth.
type RegistryConfig struct {
	MaxModels   int `yaml:"max_models"`
	HunkSizeMB  int `yaml:"hunk_size_mb"`
	WorldHunkMB int `yaml:"world_hunk_mb"`
}

// RenderConfig holds visibility and lighting toggles.
type RenderConfig struct {
	NoVis   bool `yaml:"novis"`
	LockPVS bool `yaml:"lock_pvs"`
	Dynamic bool `yaml:"dynamic_lights"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			MaxModels:   512,
			HunkSizeMB:  4,
			WorldHunkMB: 16,
		},
		Render: RenderConfig{
			NoVis:   false,
			LockPVS: false,
			Dynamic: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
