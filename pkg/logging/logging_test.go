package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/unidelivery/pkg/logging"
)

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level    logging.Level
		expected slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("unknown"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.expected {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := logging.Level("verbose").Validate(); err == nil {
		t.Error("Validate() succeeded for invalid level, want error")
	}
	if err := logging.Format("xml").Validate(); err == nil {
		t.Error("Validate() succeeded for invalid format, want error")
	}
	if err := logging.FormatJSON.Validate(); err != nil {
		t.Errorf("Validate() failed for json: %v", err)
	}
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}, &buf)

	logger.Debug("hidden")
	logger.Info("navigation resolved", "route", "home")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["route"] != "home" {
		t.Errorf("route = %v, want %q", entry["route"], "home")
	}
}

func TestNewWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&logging.Config{Level: logging.LevelDebug, Format: logging.FormatText}, &buf)

	logger.Debug("navigation resolved", "route", "users")

	if !strings.Contains(buf.String(), "route=users") {
		t.Errorf("output = %q, want it to contain route=users", buf.String())
	}
}

func TestConfig_Finalize_AppliesDefaults(t *testing.T) {
	cfg := &logging.Config{}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Level != logging.LevelInfo {
		t.Errorf("Level = %q, want %q (default)", cfg.Level, logging.LevelInfo)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want %q (default)", cfg.Format, logging.FormatText)
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	env := &logging.Env{Level: "TEST_LOGGING_LEVEL", Format: "TEST_LOGGING_FORMAT"}
	t.Setenv(env.Level, "warn")
	t.Setenv(env.Format, "json")

	cfg := &logging.Config{Level: logging.LevelDebug}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Level != logging.LevelWarn {
		t.Errorf("Level = %q, want %q (env)", cfg.Level, logging.LevelWarn)
	}
	if cfg.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want %q (env)", cfg.Format, logging.FormatJSON)
	}
}

func TestConfig_Finalize_RejectsInvalid(t *testing.T) {
	cfg := &logging.Config{Level: "loud"}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() succeeded for invalid level, want error")
	}
}

func TestConfig_Merge(t *testing.T) {
	base := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}
	base.Merge(&logging.Config{Level: logging.LevelDebug})

	if base.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want %q (should merge)", base.Level, logging.LevelDebug)
	}
	if base.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want %q (should not change)", base.Format, logging.FormatJSON)
	}
}

func TestNew(t *testing.T) {
	if logging.New(&logging.Config{}) == nil {
		t.Fatal("New() returned nil")
	}
}
