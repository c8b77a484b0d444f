package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Config holds markscan configuration.
// Stored at: ~/.markscan/config.yaml
type Config struct {
	ServerURL string        `mapstructure:"server_url" yaml:"server_url" json:"server_url"` // Extraction service base URL
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`          // Per-request timeout, 0 = none
	Output    string        `mapstructure:"output" yaml:"output" json:"output"`             // Raw output format: yaml or json
	LogLevel  string        `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	UI        UICfg         `mapstructure:"ui" yaml:"ui" json:"ui"`
}

// UICfg configures the local browser UI served by `markscan serve`.
type UICfg struct {
	Host string `mapstructure:"host" yaml:"host" json:"host"`
	Port string `mapstructure:"port" yaml:"port" json:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "http://localhost:8000",
		Timeout:   0,
		Output:    "yaml",
		LogLevel:  "info",
		UI: UICfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid server_url: %w", err))
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid server_url %q: must be an http(s) URL", c.ServerURL))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}

	switch c.Output {
	case "yaml", "json":
	default:
		errs = append(errs, fmt.Errorf("output must be yaml or json, got %q", c.Output))
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLogLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
	return l, nil
}
