// Package config loads and saves the user preferences that live outside
// the credential: the API base URL and the device name used to label
// issued API keys.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/nvhoang/aliasctl/internal/slapi"
)

// Config is the persisted user configuration.
type Config struct {
	// APIURL is the base URL of the service instance to talk to.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// DeviceName labels API keys issued to this machine. Generated on
	// first use and kept stable afterwards so re-logins reuse the label.
	DeviceName string `mapstructure:"device_name" yaml:"device_name"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/aliasctl/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "aliasctl", "config.yaml")
}

func defaultConfig() *Config {
	return &Config{
		APIURL:     slapi.DefaultBaseURL,
		DeviceName: generateDeviceName(),
	}
}

func generateDeviceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "aliasctl-" + uuid.NewString()[:8]
	}
	return "aliasctl-" + host
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("api_url", slapi.DefaultBaseURL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = slapi.DefaultBaseURL
	}
	if cfg.DeviceName == "" {
		cfg.DeviceName = generateDeviceName()
	}

	return cfg, nil
}

// Save writes the given configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api_url", cfg.APIURL)
	v.Set("device_name", cfg.DeviceName)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
