package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DefaultTouchTimeoutSeconds bounds the wait for a security key touch when
// the config file does not set one. The ssh-agent protocol itself offers no
// timeout, so this is the only escape from an untouched device.
const DefaultTouchTimeoutSeconds = 90

type Config struct {
	Device Device `toml:"device"`
	Keys   Keys   `toml:"keys"`
	Oracle Oracle `toml:"oracle"`
}

type Device struct {
	Name      string    `toml:"name"`
	UUID      string    `toml:"device_uuid"`
	CreatedAt time.Time `toml:"created_at"`
}

type Keys struct {
	// DefaultKey is the path of the sk-* public key used when --key is not given.
	DefaultKey string `toml:"default_key"`
}

type Oracle struct {
	TouchTimeoutSeconds int `toml:"touch_timeout_seconds"`
}

// ConfigPath returns the location of the user config file.
func ConfigPath() string {
	return filepath.Join(UserSkSealSettings.UserConfigsPath, "config.toml")
}

// NewConfig builds a fresh config for this install with a random device UUID.
func NewConfig(deviceName, defaultKey string) *Config {
	return &Config{
		Device: Device{
			Name:      deviceName,
			UUID:      uuid.NewString(),
			CreatedAt: time.Now().UTC(),
		},
		Keys:   Keys{DefaultKey: defaultKey},
		Oracle: Oracle{TouchTimeoutSeconds: DefaultTouchTimeoutSeconds},
	}
}

// LoadConfig loads the user configuration from the config file.
// A missing file is not an error; defaults are returned instead.
func LoadConfig() (*Config, error) {
	configPath := ConfigPath()

	config := &Config{
		Oracle: Oracle{TouchTimeoutSeconds: DefaultTouchTimeoutSeconds},
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.Oracle.TouchTimeoutSeconds <= 0 {
		config.Oracle.TouchTimeoutSeconds = DefaultTouchTimeoutSeconds
	}

	return config, nil
}

// SaveConfig writes the user configuration to the config file.
func SaveConfig(config *Config) error {
	if err := SaveTOML(ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// TouchTimeout returns the configured touch wait as a duration.
func (c *Config) TouchTimeout() time.Duration {
	return time.Duration(c.Oracle.TouchTimeoutSeconds) * time.Second
}
