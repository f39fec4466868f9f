// Package config loads clockr settings from ~/.clockr/config.yaml and
// CLOCKR_* environment variables using Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `mapstructure:"db_path"`
	// CredentialsPath holds the bearer token of the signed-in user.
	CredentialsPath string `mapstructure:"credentials_path"`
	// LogLevel is a zerolog level name.
	LogLevel string `mapstructure:"log_level"`
	// LogFile receives logs while the TUI owns the terminal.
	LogFile string `mapstructure:"log_file"`
	// Tick is the timer recompute period (e.g. "1s").
	Tick time.Duration `mapstructure:"tick"`
	// TimeLayout renders instants in CSV exports.
	TimeLayout string `mapstructure:"time_layout"`
	// ExportBaseURL prefixes links to uploaded exports.
	ExportBaseURL string `mapstructure:"export_base_url"`
	// ListenAddr is where `clockr serve` listens.
	ListenAddr string `mapstructure:"listen_addr"`
}

// Load reads the optional config file at path (default ~/.clockr/config.yaml),
// then applies CLOCKR_* environment overrides.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config: failed to get home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".clockr")

	v := viper.New()
	v.SetEnvPrefix("CLOCKR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db_path", filepath.Join(dataDir, "clockr.db"))
	v.SetDefault("credentials_path", filepath.Join(dataDir, "credentials"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(dataDir, "clockr.log"))
	v.SetDefault("tick", "1s")
	v.SetDefault("time_layout", "1/2/2006, 3:04:05 PM")
	v.SetDefault("export_base_url", "http://localhost:8080")
	v.SetDefault("listen_addr", ":8080")

	if path == "" {
		path = filepath.Join(dataDir, "config.yaml")
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.DBPath == "" {
		return nil, errors.New("config: db_path must be set")
	}
	if cfg.Tick <= 0 {
		return nil, errors.New("config: tick must be a positive duration")
	}
	return &cfg, nil
}
