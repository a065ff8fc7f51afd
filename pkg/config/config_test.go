package config_test

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/asynccomm/asynccomm-go/pkg/config"
	"github.com/asynccomm/asynccomm-go/pkg/connection"
)

func TestParseFull(t *testing.T) {
	data := `
target:
  address: db.internal:38040
  connect_timeout: 2s
  retry_interval: 500ms
  wait_message: still waiting
log:
  level: debug
  event_file: /tmp/events.alog
metrics:
  enabled: true
  listen: 127.0.0.1:9999
`
	cfg, err := config.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Target.Address != "db.internal:38040" {
		t.Errorf("Address: expected db.internal:38040, got %s", cfg.Target.Address)
	}
	if cfg.Target.ConnectTimeout.Std() != 2*time.Second {
		t.Errorf("ConnectTimeout: expected 2s, got %s", cfg.Target.ConnectTimeout)
	}
	if cfg.Target.RetryInterval.Std() != 500*time.Millisecond {
		t.Errorf("RetryInterval: expected 500ms, got %s", cfg.Target.RetryInterval)
	}
	if cfg.Target.WaitMessage != "still waiting" {
		t.Errorf("WaitMessage mismatch: %q", cfg.Target.WaitMessage)
	}
	if cfg.Log.Level != "debug" || cfg.Log.EventFile != "/tmp/events.alog" {
		t.Errorf("Log section mismatch: %+v", cfg.Log)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Listen != "127.0.0.1:9999" {
		t.Errorf("Metrics section mismatch: %+v", cfg.Metrics)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("target:\n  address: host:1\n"))
	require.NoError(t, err)

	assert.Equal(t, connection.DefaultConnectTimeout, cfg.Target.ConnectTimeout.Std())
	assert.Equal(t, connection.DefaultRetryInterval, cfg.Target.RetryInterval.Std())
	assert.Equal(t, connection.DefaultWaitMessage, cfg.Target.WaitMessage)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "target: [unclosed"},
		{"bad duration", "target:\n  retry_interval: soon\n"},
		{"zero retry interval", "target:\n  retry_interval: 0s\n"},
		{"negative connect timeout", "target:\n  connect_timeout: -1s\n"},
		{"unknown level", "log:\n  level: loud\n"},
		{"metrics without listen", "metrics:\n  enabled: true\n  listen: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			var le *config.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %T", err)
			}
			if le.Cause == nil {
				t.Error("expected a cause")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asynccomm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target:\n  address: host:1\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "host:1", cfg.Target.Address)

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "nope.yaml"))
		var le *config.LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, filepath.Join(dir, "nope.yaml"), le.File)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("invalid file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("target:\n  retry_interval: x\n"), 0o644))

		_, err := config.Load(bad)
		var le *config.LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, bad, le.File)
		assert.Contains(t, err.Error(), bad)
	})
}

func TestToTarget(t *testing.T) {
	cfg := config.Default()

	_, err := cfg.ToTarget()
	assert.Error(t, err, "empty address must be rejected")

	cfg.Target.Address = "host:1"
	target, err := cfg.ToTarget()
	require.NoError(t, err)
	assert.Equal(t, connection.DefaultTarget("host:1"), target)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := config.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := config.ParseLevel("trace")
	assert.Error(t, err)
}

func TestDurationMarshal(t *testing.T) {
	out, err := yaml.Marshal(config.Default().Target)
	require.NoError(t, err)
	assert.Contains(t, string(out), "retry_interval: 10s")
	assert.Contains(t, string(out), "connect_timeout: 5s")
}
