// Package config loads the fsglob CLI configuration from YAML via viper.
package config

import (
	"errors"
	"fmt"
)

// Config errors
var (
	// ErrConfigNotFound indicates no config file was found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates the config file is malformed
	ErrConfigInvalid = errors.New("invalid config")
)

// Config is the complete fsglob configuration
type Config struct {
	// Logging configures the CLI logger
	Logging LoggingConfig `mapstructure:"logging"`

	// Find is the default finder profile applied by the find command
	Find FindConfig `mapstructure:"find"`

	// Watch is the default watcher profile applied by the watch command
	Watch WatchConfig `mapstructure:"watch"`
}

// LoggingConfig configures log output
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// FindConfig is a finder profile
type FindConfig struct {
	Roots          []string `mapstructure:"roots"`
	Names          []string `mapstructure:"names"`
	NotNames       []string `mapstructure:"not_names"`
	Paths          []string `mapstructure:"paths"`
	NotPaths       []string `mapstructure:"not_paths"`
	ExcludeDirs    []string `mapstructure:"exclude_dirs"`
	DirsOnly       bool     `mapstructure:"dirs_only"`
	FilesOnly      bool     `mapstructure:"files_only"`
	NoRecursive    bool     `mapstructure:"no_recursive"`
	FollowSymlinks bool     `mapstructure:"follow_symlinks"`
	SkipUnreadable bool     `mapstructure:"skip_unreadable"`
	KeepVCS        bool     `mapstructure:"keep_vcs"`
	IgnoreDotFiles bool     `mapstructure:"ignore_dot_files"`
	IgnoreDotDirs  bool     `mapstructure:"ignore_dot_dirs"`
}

// WatchConfig is a watcher profile
type WatchConfig struct {
	Dirs         []string `mapstructure:"dirs"`
	Marker       string   `mapstructure:"marker"`
	Names        []string `mapstructure:"names"`
	NotNames     []string `mapstructure:"not_names"`
	ExcludeDirs  []string `mapstructure:"exclude_dirs"`
	KeepDotDirs  bool     `mapstructure:"keep_dot_dirs"`
	KeepDotFiles bool     `mapstructure:"keep_dot_files"`
}

// Validate checks the configuration for contradictions
func (c *Config) Validate() error {
	if c.Find.DirsOnly && c.Find.FilesOnly {
		return fmt.Errorf("%w: find profile sets both dirs_only and files_only", ErrConfigInvalid)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level: %s", ErrConfigInvalid, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format: %s", ErrConfigInvalid, c.Logging.Format)
	}

	return nil
}
