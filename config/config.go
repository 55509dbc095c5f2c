// Package config loads betterjpeg settings from defaults, an optional
// betterjpeg.yaml file and BETTERJPEG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvConfigFile names the environment variable pointing at an explicit config file
const EnvConfigFile = "BETTERJPEG_CONFIG"

type Config struct {
	Encoder  EncoderConfig  `mapstructure:"encoder"`
	Workers  int            `mapstructure:"workers"`
	Warnings WarningsConfig `mapstructure:"warnings"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Log      LogConfig      `mapstructure:"log"`
}

type EncoderConfig struct {
	Executable   string `mapstructure:"executable"`
	Args         string `mapstructure:"args"`
	OutputSuffix string `mapstructure:"output_suffix"`
}

type WarningsConfig struct {
	CountLimit int   `mapstructure:"count_limit"`
	SizeLimit  int64 `mapstructure:"size_limit"` // bytes
}

type ScanConfig struct {
	Extensions []string `mapstructure:"extensions"`
}

type LogConfig struct {
	MaxSize    int  `mapstructure:"max_size"`    // megabytes
	MaxBackups int  `mapstructure:"max_backups"` // rotated files kept
	MaxAge     int  `mapstructure:"max_age"`     // days
	Compress   bool `mapstructure:"compress"`
}

// Load reads the configuration. When path is empty, BETTERJPEG_CONFIG is
// consulted, then betterjpeg.yaml is searched in the working directory and the
// user config directory. A missing search-path file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BETTERJPEG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("betterjpeg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "betterjpeg"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("encoder.executable", "mozcjpeg")
	v.SetDefault("encoder.args", "")
	v.SetDefault("encoder.output_suffix", ".out")

	v.SetDefault("workers", 2)

	v.SetDefault("warnings.count_limit", 50)
	v.SetDefault("warnings.size_limit", 100*1024*1024)

	v.SetDefault("scan.extensions", []string{"jpeg", "jpg", "JPEG", "JPG"})

	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// Validate checks the settings that would make a run meaningless
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Encoder.Executable) == "" {
		return errors.New("encoder.executable must not be empty")
	}
	if c.Encoder.OutputSuffix == "" {
		return errors.New("encoder.output_suffix must not be empty")
	}
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must list at least one extension")
	}
	if c.Warnings.CountLimit < 0 {
		return fmt.Errorf("warnings.count_limit must be >= 0, got %d", c.Warnings.CountLimit)
	}
	if c.Warnings.SizeLimit < 0 {
		return fmt.Errorf("warnings.size_limit must be >= 0, got %d", c.Warnings.SizeLimit)
	}
	return nil
}
