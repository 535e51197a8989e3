package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Save writes and where Load looks after the working directory
func DefaultPath() string {
	return filepath.Join(ConfigDir(), configNames[0])
}

// Save writes the config to DefaultPath
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// SaveTo writes the config to path, as TOML for a .toml extension and YAML otherwise
func (c *Config) SaveTo(path string) error {
	data, err := c.Marshal(isTOML(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Marshal encodes the config as TOML or YAML
func (c *Config) Marshal(asTOML bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if asTOML {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
