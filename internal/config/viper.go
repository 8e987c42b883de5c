// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		// BaseSource is the raw historical manifest, read-only.
		BaseSource string `mapstructure:"base_source" yaml:"base_source"`
		// BaseSnapshot is the structured cache rebuilt from BaseSource.
		BaseSnapshot string `mapstructure:"base_snapshot" yaml:"base_snapshot"`
		// ColumnRules optionally overrides the built-in header mapping rules.
		ColumnRules string `mapstructure:"column_rules" yaml:"column_rules"`
	} `mapstructure:"data" yaml:"data"`

	Server struct {
		Addr        string `mapstructure:"addr" yaml:"addr"`
		PreviewRows int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	} `mapstructure:"server" yaml:"server"`

	Report struct {
		Filename   string `mapstructure:"filename" yaml:"filename"`
		Title      string `mapstructure:"title" yaml:"title"`
		SenderMax  int    `mapstructure:"sender_max" yaml:"sender_max"`
		AddressMax int    `mapstructure:"address_max" yaml:"address_max"`
		PostalMax  int    `mapstructure:"postal_max" yaml:"postal_max"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.manifest-match")
	v.AddConfigPath(".manifest-match")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("MANIFEST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
		// Missing config file is fine, defaults and env vars apply.
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.base_source", "base.txt")
	v.SetDefault("data.base_snapshot", "base.csv")
	v.SetDefault("data.column_rules", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.preview_rows", 500)

	v.SetDefault("report.filename", "repeated_senders.pdf")
	v.SetDefault("report.title", "Repeated Addresses Report (Sender — Origin Address — Origin Postal Code)")
	v.SetDefault("report.sender_max", 200)
	v.SetDefault("report.address_max", 300)
	v.SetDefault("report.postal_max", 12)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.PreviewRows < 0 {
		return fmt.Errorf("server.preview_rows must not be negative, got: %d", config.Server.PreviewRows)
	}

	for name, max := range map[string]int{
		"report.sender_max":  config.Report.SenderMax,
		"report.address_max": config.Report.AddressMax,
		"report.postal_max":  config.Report.PostalMax,
	} {
		if max < 1 {
			return fmt.Errorf("%s must be at least 1, got: %d", name, max)
		}
	}

	return nil
}

// BaseSourcePath resolves the raw base file location against the data
// directory unless it is already absolute.
func (c *Config) BaseSourcePath() string {
	return c.resolve(c.Data.BaseSource)
}

// BaseSnapshotPath resolves the snapshot location against the data directory
// unless it is already absolute.
func (c *Config) BaseSnapshotPath() string {
	return c.resolve(c.Data.BaseSnapshot)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Data.Directory, path)
}

// ConfigureLoggingFromConfig configures a logrus logger from the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
