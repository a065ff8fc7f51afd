// Package config loads the YAML configuration for the asynccomm commands.
//
// Example file:
//
//	target:
//	  address: db.internal:38040
//	  connect_timeout: 5s
//	  retry_interval: 10s
//	  wait_message: waiting for connection
//	log:
//	  level: info
//	  event_file: /var/log/asynccomm/events.alog
//	metrics:
//	  enabled: true
//	  listen: 127.0.0.1:9464
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/asynccomm/asynccomm-go/pkg/connection"
)

// Config is the top-level configuration.
type Config struct {
	Target  TargetConfig  `yaml:"target"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// TargetConfig describes the remote endpoint and retry timing.
type TargetConfig struct {
	Address        string   `yaml:"address"`
	ConnectTimeout Duration `yaml:"connect_timeout"`
	RetryInterval  Duration `yaml:"retry_interval"`
	WaitMessage    string   `yaml:"wait_message"`
}

// LogConfig controls diagnostics and event capture.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// EventFile is the CBOR event log path. Empty disables capture.
	EventFile string `yaml:"event_file"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns a Config with default timings and no target address.
func Default() *Config {
	return &Config{
		Target: TargetConfig{
			ConnectTimeout: Duration(connection.DefaultConnectTimeout),
			RetryInterval:  Duration(connection.DefaultRetryInterval),
			WaitMessage:    connection.DefaultWaitMessage,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9464",
		},
	}
}

// Parse parses YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Message: "invalid configuration",
			Cause:   err,
		}
	}

	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	return cfg, nil
}

// Validate checks the configuration. The target address may be empty here
// since commands accept it as a flag; ToTarget rejects it.
func (c *Config) Validate() error {
	if c.Target.ConnectTimeout <= 0 {
		return fmt.Errorf("target.connect_timeout must be positive, got %s", c.Target.ConnectTimeout)
	}
	if c.Target.RetryInterval <= 0 {
		return fmt.Errorf("target.retry_interval must be positive, got %s", c.Target.RetryInterval)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return fmt.Errorf("metrics.listen is required when metrics are enabled")
	}
	return nil
}

// ToTarget converts the target section to a validated connection.Target.
func (c *Config) ToTarget() (connection.Target, error) {
	t := connection.Target{
		Address:        c.Target.Address,
		ConnectTimeout: c.Target.ConnectTimeout.Std(),
		RetryInterval:  c.Target.RetryInterval.Std(),
		WaitMessage:    c.Target.WaitMessage,
	}
	if err := t.Validate(); err != nil {
		return connection.Target{}, err
	}
	return t, nil
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// LoadError describes a configuration loading failure.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
