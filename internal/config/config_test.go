package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Signal.Backend != "log" {
		t.Errorf("Signal.Backend = %q, want %q", cfg.Signal.Backend, "log")
	}
	if cfg.Signal.NATSURL == "" {
		t.Error("Signal.NATSURL should have a default")
	}
	if cfg.Signal.NATSSubject != "blepad.status" {
		t.Errorf("Signal.NATSSubject = %q, want %q", cfg.Signal.NATSSubject, "blepad.status")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
signal:
  backend: nats
  nats_url: nats://car.local:4222
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Signal.Backend != "nats" {
		t.Errorf("Signal.Backend = %q, want %q", cfg.Signal.Backend, "nats")
	}
	if cfg.Signal.NATSURL != "nats://car.local:4222" {
		t.Errorf("Signal.NATSURL = %q", cfg.Signal.NATSURL)
	}
	// Unset fields keep their defaults.
	if cfg.Signal.NATSSubject != "blepad.status" {
		t.Errorf("Signal.NATSSubject = %q, want default", cfg.Signal.NATSSubject)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("signal: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"valid led", func(c *Config) {
			c.Signal.Backend = "led"
			c.Signal.LED = "status0"
		}, ""},
		{"unknown backend", func(c *Config) { c.Signal.Backend = "smoke" }, "signal.backend"},
		{"nats without url", func(c *Config) {
			c.Signal.Backend = "nats"
			c.Signal.NATSURL = ""
		}, "signal.nats_url"},
		{"nats without subject", func(c *Config) {
			c.Signal.Backend = "nats"
			c.Signal.NATSSubject = ""
		}, "signal.nats_subject"},
		{"led without name", func(c *Config) { c.Signal.Backend = "led" }, "signal.led"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}
