package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/benchexplorer/internal/explorer"
)

// ErrInvalid marks a configuration that cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
}

// DataConfig points at the catalogue CSV.
type DataConfig struct {
	Path string
}

// DatabaseConfig holds sqlite settings for saved presets. An empty path
// disables presets.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize  int `mapstructure:"page_size"`
	ChartRows int `mapstructure:"chart_rows"`
}

// LogConfig routes the zap logger. An empty file discards logs.
type LogConfig struct {
	File  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix
// BENCHEXPLORER_. path, when set, wins over BENCHEXPLORER_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("data.path", filepath.Join("data", "datasets.csv"))
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "benchexplorer", "benchexplorer.db"))
	v.SetDefault("ui.page_size", explorer.DefaultPageSize)
	v.SetDefault("ui.chart_rows", 10)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := path
	if cfgPath == "" {
		cfgPath = os.Getenv("BENCHEXPLORER_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "benchexplorer"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BENCHEXPLORER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// an explicitly named file must exist; the default location is optional
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate reports settings that would break startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("%w: data.path is empty", ErrInvalid)
	}
	if !explorer.ValidPageSize(c.UI.PageSize) {
		return fmt.Errorf("%w: ui.page_size %d not in %v", ErrInvalid, c.UI.PageSize, explorer.PageSizes)
	}
	if c.UI.ChartRows < 1 {
		return fmt.Errorf("%w: ui.chart_rows must be positive", ErrInvalid)
	}
	return nil
}

// Save writes the provided config to path, creating the directory if needed.
// An empty path writes to BENCHEXPLORER_CONFIG or the default location.
func Save(cfg Config, path string) error {
	if path == "" {
		path = os.Getenv("BENCHEXPLORER_CONFIG")
	}
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "benchexplorer", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("data.path", cfg.Data.Path)
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.chart_rows", cfg.UI.ChartRows)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
