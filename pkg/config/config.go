// Package config loads and saves ~/.config/classwork/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	xdgAppName = "classwork"
	configFile = "config.toml"

	DefaultPollInterval   = 60 * time.Second
	MinPollInterval       = 30 * time.Second
	MaxPollInterval       = 120 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
)

// Files kept in the data directory.
const (
	CoursesFile     = "courses.json"
	AssignmentsFile = "assignments.json"
	IgnoreFile      = "ignored.txt"
	LogFile         = "classwork.log"
)

type Config struct {
	PollInterval   Duration `toml:"poll_interval"`
	RequestTimeout Duration `toml:"request_timeout"`
	LogLevel       string   `toml:"log_level"`
	DataDir        string   `toml:"data_dir"`
}

// Duration is a time.Duration written as a string such as "90s" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		PollInterval:   Duration{DefaultPollInterval},
		RequestTimeout: Duration{DefaultRequestTimeout},
		LogLevel:       DefaultLogLevel,
		DataDir:        dir,
	}, nil
}

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config file. Missing keys, or a missing file, take defaults.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	var fileCfg Config
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.merge(fileCfg)
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) merge(other Config) {
	if other.PollInterval.Duration != 0 {
		c.PollInterval = other.PollInterval
	}
	if other.RequestTimeout.Duration != 0 {
		c.RequestTimeout = other.RequestTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.DataDir != "" {
		c.DataDir = expandHome(other.DataDir)
	}
}

// Normalize clamps the poll interval into [MinPollInterval, MaxPollInterval]
// and resets invalid values to their defaults.
func (c *Config) Normalize() {
	switch {
	case c.PollInterval.Duration <= 0:
		c.PollInterval.Duration = DefaultPollInterval
	case c.PollInterval.Duration < MinPollInterval:
		c.PollInterval.Duration = MinPollInterval
	case c.PollInterval.Duration > MaxPollInterval:
		c.PollInterval.Duration = MaxPollInterval
	}
	if c.RequestTimeout.Duration <= 0 {
		c.RequestTimeout.Duration = DefaultRequestTimeout
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = DefaultLogLevel
	}
}

// Path returns name inside the data directory.
func (c *Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
