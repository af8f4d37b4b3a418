// Package client hosts the binder on a terminal: it persists the session
// cookie, logs in against the server and renders notifications.
package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when neither the config file nor a flag names a server.
const DefaultBaseURL = "http://localhost:8080"

const configName = ".postboard.yaml"

// Config is the persisted client state.
type Config struct {
	BaseURL string `yaml:"base_url"`
	Session string `yaml:"session,omitempty"`
	CAFile  string `yaml:"ca_file,omitempty"`
}

// DefaultPath returns ~/.postboard.yaml, or a file in the working directory
// when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configName
	}
	return filepath.Join(home, configName)
}

// LoadConfig reads path. A missing file yields defaults and no error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{BaseURL: DefaultBaseURL}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// Save writes the config with owner-only permissions since it holds the
// session cookie.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
