package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Load loads configuration with priority: defaults < file < flags.
// An empty path falls back to the -config flag, then ./objconv.yaml.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = ConfigPath()
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "loading config from %s", path)
		}
	}
	ApplyFlags(cfg)
	return cfg, nil
}

func findConfigFile() string {
	if _, err := os.Stat("objconv.yaml"); err == nil {
		return "objconv.yaml"
	}
	return ""
}

func loadFromFile(cfg *Config, path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// SaveTo writes the config to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}
