// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analyzer AnalyzerConfig `toml:"analyzer"`
	Models   ModelsConfig   `toml:"models"`
	Compare  CompareConfig  `toml:"compare"`
	Report   ReportConfig   `toml:"report"`
}

// AnalyzerConfig maps morphology resolver settings.
type AnalyzerConfig struct {
	Path      *string `toml:"path"`
	Timeout   *string `toml:"timeout"`
	Lexicon   *string `toml:"lexicon"`
	Cache     *bool   `toml:"cache"`
	CachePath *string `toml:"cache-path"`
}

// ModelsConfig maps model storage settings.
type ModelsConfig struct {
	Dir *string `toml:"dir"`
}

// CompareConfig maps comparison settings.
type CompareConfig struct {
	IgnoreCommon *bool   `toml:"ignore-common"`
	IgnoreList   *string `toml:"ignore-list"`
}

// ReportConfig maps reporting settings.
type ReportConfig struct {
	Top *int `toml:"top"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if cfg.Analyzer.Timeout != nil {
		if _, err := cfg.Analyzer.TimeoutDuration(); err != nil {
			return FileConfig{}, err
		}
	}
	return cfg, nil
}

// TimeoutDuration parses the analyzer timeout. It returns zero when unset.
func (c AnalyzerConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == nil {
		return 0, nil
	}
	d, err := time.ParseDuration(*c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid analyzer timeout %q: %w", *c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("analyzer timeout must be positive, got %s", d)
	}
	return d, nil
}
