package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override settings,
// e.g. HARSTAT_SOURCE.
const EnvPrefix = "HARSTAT"

// Settings is the merged application configuration: flags override
// environment variables, which override the config file, which overrides
// the defaults.
type Settings struct {
	Source     string `mapstructure:"source"`
	SourceType string `mapstructure:"source-type"`
	LogLevel   string `mapstructure:"log-level"`
	LogFormat  string `mapstructure:"log-format"`
	LogFile    string `mapstructure:"log-file"`
	NoColor    bool   `mapstructure:"no-color"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source", "")
	v.SetDefault("source-type", "")
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "console")
	v.SetDefault("log-file", "")
	v.SetDefault("no-color", false)
}

// LoadSettings reads the config file registered on v, if any, and returns
// the merged settings. A missing config file is not an error.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(v) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &s, nil
}

// isMissingFile reports whether the explicitly configured file is absent.
// viper only returns ConfigFileNotFoundError when it searched for the file
// itself.
func isMissingFile(v *viper.Viper) bool {
	path := v.ConfigFileUsed()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
