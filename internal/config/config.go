// Package config handles objconv settings.
package config

// Config holds all converter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Texture TextureConfig `yaml:"texture"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls OBJ/MTL generation.
type OutputConfig struct {
	Engine      string `yaml:"engine"` // unity, ue
	Dir         string `yaml:"dir"`
	TextureDir  string `yaml:"texture_dir"`  // relative to Dir
	MaterialDir string `yaml:"material_dir"` // relative to Dir
	MaxFacet    int    `yaml:"max_facet"`
	Recenter    bool   `yaml:"recenter"`
	Phantom     bool   `yaml:"phantom"`
	Collider    bool   `yaml:"collider"`
}

// TextureConfig controls texture export.
type TextureConfig struct {
	Export          bool `yaml:"export"`
	ResolutionLimit int  `yaml:"resolution_limit"` // 0: unlimited
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Engine:   "unity",
			Dir:      "./",
			MaxFacet: 10000,
			Phantom:  true,
			Collider: true,
		},
		Texture: TextureConfig{
			Export: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
