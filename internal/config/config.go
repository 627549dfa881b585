package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kamusis/colorname-cli/internal/colorname"
	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.colorname/colorname.yaml.
type Config struct {
	Table        string `yaml:"table"`
	CacheDir     string `yaml:"cache_dir,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
	UnknownColor string `yaml:"unknown_color,omitempty"`
	Strict       bool   `yaml:"strict,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	LogFormat    string `yaml:"log_format,omitempty"`
}

// Environment keys that override values from colorname.yaml.
const (
	EnvTable     = "COLORNAME_TABLE"
	EnvWorkers   = "COLORNAME_WORKERS"
	EnvLogLevel  = "COLORNAME_LOG_LEVEL"
	EnvCacheDir  = "COLORNAME_CACHE_DIR"
	EnvLogFormat = "COLORNAME_LOG_FORMAT"
)

// Dir returns the absolute path to ~/.colorname/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".colorname"), nil
}

// ConfigPath returns the absolute path to ~/.colorname/colorname.yaml.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "colorname.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the configuration used when colorname.yaml is absent.
func DefaultConfig() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Table:        filepath.Join(dir, "w2c.txt"),
		CacheDir:     filepath.Join(dir, "cache"),
		Workers:      1,
		UnknownColor: "#000000",
		LogLevel:     "warn",
		LogFormat:    "text",
	}, nil
}

// Load reads ~/.colorname/colorname.yaml, falling back to DefaultConfig when
// the file does not exist, then applies environment overrides.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}
	if err := applyOverrides(cfg); err != nil {
		return nil, err
	}
	// Expand ~ at load time.
	if cfg.Table, err = ExpandPath(cfg.Table); err != nil {
		return nil, err
	}
	if cfg.CacheDir, err = ExpandPath(cfg.CacheDir); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save marshals cfg and writes it to ~/.colorname/colorname.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Unknown returns the parsed unknown_color, black when unset.
func (c *Config) Unknown() (colorname.RGBColor, error) {
	if c.UnknownColor == "" {
		return colorname.RGBColor{}, nil
	}
	return ParseHexColor(c.UnknownColor)
}

// ParseHexColor parses "#rrggbb" (the leading # is optional).
func ParseHexColor(s string) (colorname.RGBColor, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return colorname.RGBColor{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return colorname.RGBColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return colorname.RGBColor{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func applyOverrides(cfg *Config) error {
	set := func(key string, dst *string) error {
		v, err := GetConfigValue(key)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = v
		}
		return nil
	}
	if err := set(EnvTable, &cfg.Table); err != nil {
		return err
	}
	if err := set(EnvCacheDir, &cfg.CacheDir); err != nil {
		return err
	}
	if err := set(EnvLogLevel, &cfg.LogLevel); err != nil {
		return err
	}
	if err := set(EnvLogFormat, &cfg.LogFormat); err != nil {
		return err
	}
	var workers string
	if err := set(EnvWorkers, &workers); err != nil {
		return err
	}
	if workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, workers, err)
		}
		cfg.Workers = n
	}
	return nil
}
