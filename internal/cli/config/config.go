package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the solbind configuration
type Config struct {
	Output string    `mapstructure:"output"`
	IDL    IDLConfig `mapstructure:"idl"`
}

// IDLConfig represents document-loading configuration
type IDLConfig struct {
	DefaultVersion int `mapstructure:"default_version"`
}

// Load loads the configuration from solbind.yml or solbind.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output", "bindings")
	v.SetDefault("idl.default_version", 1)

	// Set config name and paths
	v.SetConfigName("solbind")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix("SOLBIND")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if cfg.IDL.DefaultVersion != 1 && cfg.IDL.DefaultVersion != 2 {
		return fmt.Errorf("idl.default_version must be 1 or 2, got: %d", cfg.IDL.DefaultVersion)
	}
	return nil
}
