package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Signal   SignalConfig `yaml:"signal"`
	LogLevel string       `yaml:"log_level"`
}

// SignalConfig selects and tunes the status signaling backend.
type SignalConfig struct {
	Backend     string `yaml:"backend"` // "log", "nats" or "led"
	NATSURL     string `yaml:"nats_url"`
	NATSSubject string `yaml:"nats_subject"`
	LED         string `yaml:"led"` // name under /sys/class/leds
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "blepad")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Signal: SignalConfig{
			Backend:     "log",
			NATSURL:     "nats://127.0.0.1:4222",
			NATSSubject: "blepad.status",
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	switch c.Signal.Backend {
	case "log":
	case "nats":
		if c.Signal.NATSURL == "" {
			return fmt.Errorf("signal.nats_url must not be empty for the nats backend")
		}
		if c.Signal.NATSSubject == "" {
			return fmt.Errorf("signal.nats_subject must not be empty for the nats backend")
		}
	case "led":
		if c.Signal.LED == "" {
			return fmt.Errorf("signal.led must not be empty for the led backend")
		}
	default:
		return fmt.Errorf("signal.backend must be \"log\", \"nats\" or \"led\", got %q", c.Signal.Backend)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}
