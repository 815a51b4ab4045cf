// Package config provides configuration management for the pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values applied for any key absent from the configuration file.
const (
	DefaultRawDir        = "data/raw/"
	DefaultProcessedDir  = "data/processed/"
	DefaultSteamDataset  = "steam_app_data.csv"
	DefaultTwitchDataset = "Twitch_game_data.csv"
	DefaultLogLevel      = "info"
)

// Configuration validation errors.
var (
	ErrMissingRawDir       = errors.New("paths.raw_data must not be empty")
	ErrMissingProcessedDir = errors.New("paths.processed_data must not be empty")
	ErrMissingSteamFile    = errors.New("files.steam_dataset must not be empty")
	ErrMissingTwitchFile   = errors.New("files.twitch_dataset must not be empty")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Files   FilesConfig   `yaml:"files"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig locates the raw and processed data directories.
type PathsConfig struct {
	RawData       string `yaml:"raw_data"`
	ProcessedData string `yaml:"processed_data"`
}

// FilesConfig names the two source datasets inside the raw directory.
type FilesConfig struct {
	SteamDataset  string `yaml:"steam_dataset"`
	TwitchDataset string `yaml:"twitch_dataset"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with every field at its documented default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

// LoadConfig loads configuration from a YAML file. A missing file is not an
// error: every field falls back to its default, so the pipeline runs with no
// configuration present at all.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Paths.RawData == "" {
		c.Paths.RawData = DefaultRawDir
	}

	if c.Paths.ProcessedData == "" {
		c.Paths.ProcessedData = DefaultProcessedDir
	}

	if c.Files.SteamDataset == "" {
		c.Files.SteamDataset = DefaultSteamDataset
	}

	if c.Files.TwitchDataset == "" {
		c.Files.TwitchDataset = DefaultTwitchDataset
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Validate validates the configuration after defaults are applied.
func (c *Config) Validate() error {
	if c.Paths.RawData == "" {
		return ErrMissingRawDir
	}

	if c.Paths.ProcessedData == "" {
		return ErrMissingProcessedDir
	}

	if c.Files.SteamDataset == "" {
		return ErrMissingSteamFile
	}

	if c.Files.TwitchDataset == "" {
		return ErrMissingTwitchFile
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// SteamPath returns the full path of the Steam source dataset.
func (c *Config) SteamPath() string {
	return filepath.Join(c.Paths.RawData, c.Files.SteamDataset)
}

// TwitchPath returns the full path of the Twitch source dataset.
func (c *Config) TwitchPath() string {
	return filepath.Join(c.Paths.RawData, c.Files.TwitchDataset)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Raw: %s, Processed: %s, Steam: %s, Twitch: %s}",
		c.Paths.RawData,
		c.Paths.ProcessedData,
		c.Files.SteamDataset,
		c.Files.TwitchDataset,
	)
}
