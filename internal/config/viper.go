// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/expense-tracker/internal/export"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the application,
// e.g. EXPENSE_TRACKER_DATA_DIRECTORY.
const EnvPrefix = "EXPENSE_TRACKER"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		// AttachmentsRoot bounds receipt and income document paths. Empty
		// means the data directory.
		AttachmentsRoot string `mapstructure:"attachments_root" yaml:"attachments_root"`
	} `mapstructure:"data" yaml:"data"`

	Export struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"export" yaml:"export"`
}

// AttachmentsDir returns the directory attachment paths are resolved against.
func (c *Config) AttachmentsDir() string {
	if c.Data.AttachmentsRoot != "" {
		return c.Data.AttachmentsRoot
	}
	return c.Data.Directory
}

// NewViper returns a Viper instance with defaults, config file locations and
// environment binding in place. Callers may bind flags before FromViper.
func NewViper() *viper.Viper {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.expense-tracker")
	v.AddConfigPath(".expense-tracker")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// FromViper reads the optional config file, then unmarshals and validates.
func FromViper(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// InitializeConfig loads configuration from defaults, config file and environment.
func InitializeConfig() (*Config, error) {
	return FromViper(NewViper())
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.attachments_root", "")

	v.SetDefault("export.format", string(export.FormatJSON))
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Data.Directory) == "" {
		return fmt.Errorf("data.directory cannot be empty")
	}

	if _, err := export.ParseFormat(config.Export.Format); err != nil {
		return fmt.Errorf("invalid export format: %s", config.Export.Format)
	}

	return nil
}
