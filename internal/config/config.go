// Package config loads taskboard settings from an optional file, the environment,
// and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fentz26/taskboard/internal/models"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TASKBOARD_LOG_LEVEL.
const EnvPrefix = "TASKBOARD"

// Config defines the taskboard configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
	Journal JournalConfig `mapstructure:"journal"`
	// Seed is a YAML file of tasks loaded into every new session.
	Seed string `mapstructure:"seed"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// UIConfig controls the dashboard.
type UIConfig struct {
	DateFormat    string `mapstructure:"date_format"`
	DefaultFilter string `mapstructure:"default_filter"`
}

// JournalConfig controls the session journal.
type JournalConfig struct {
	// HistoryLimit is the number of entries the history pane shows.
	HistoryLimit int `mapstructure:"history_limit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(os.TempDir(), "taskboard", "taskboard.log"),
			MaxSize:    10,
			MaxBackups: 3,
		},
		UI: UIConfig{
			DateFormat:    models.DateLayout,
			DefaultFilter: string(models.FilterAll),
		},
		Journal: JournalConfig{
			HistoryLimit: 50,
		},
	}
}

// Filter returns the parsed default filter.
func (c *Config) Filter() models.Filter {
	f, err := models.ParseFilter(c.UI.DefaultFilter)
	if err != nil {
		return models.FilterAll
	}
	return f
}

// Load reads configuration into v and unmarshals it. Values resolve in order:
// flags bound on v, TASKBOARD_* environment variables, the config file, defaults.
//
// When configPath is empty, taskboard.yaml is searched in the working directory
// and in the user config directory; a missing file is not an error.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("taskboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "taskboard"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers DefaultConfig values with v.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)

	v.SetDefault("ui.date_format", d.UI.DateFormat)
	v.SetDefault("ui.default_filter", d.UI.DefaultFilter)

	v.SetDefault("journal.history_limit", d.Journal.HistoryLimit)

	v.SetDefault("seed", d.Seed)
}

func validate(cfg *Config) error {
	if _, err := models.ParseFilter(cfg.UI.DefaultFilter); err != nil {
		return fmt.Errorf("ui.default_filter: %w", err)
	}
	if cfg.UI.DateFormat == "" {
		return errors.New("ui.date_format must not be empty")
	}
	if cfg.Journal.HistoryLimit < 0 {
		return errors.New("journal.history_limit must be >= 0")
	}
	if cfg.Log.MaxSize < 0 || cfg.Log.MaxBackups < 0 {
		return errors.New("log.max_size and log.max_backups must be >= 0")
	}
	return nil
}
