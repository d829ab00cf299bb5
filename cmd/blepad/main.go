package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blepad/blepad/internal/bridge"
	"github.com/blepad/blepad/internal/config"
	"github.com/blepad/blepad/internal/signaling"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/blepad/config.yaml)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	printBanner(cfg)

	signaler, err := newSignaler(cfg, logger)
	if err != nil {
		log.Fatalf("signaling: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := bridge.New(signaler, logger, bridge.Options{})
	if err := b.Run(ctx); err != nil {
		logger.Error("bring-up failed", "err", err)
		os.Exit(1)
	}

	logger.Info("shutting down")
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Printf("Config loaded from %s", defaultPath)
		return cfg, nil
	}

	log.Println("No config file found, using defaults")
	return config.Default(), nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

func newSignaler(cfg *config.Config, logger *slog.Logger) (signaling.Signaler, error) {
	switch cfg.Signal.Backend {
	case "nats":
		return signaling.NewNATS(cfg.Signal.NATSURL, cfg.Signal.NATSSubject, logger)
	case "led":
		return signaling.NewLED(cfg.Signal.LED, logger), nil
	default: // Validate only lets "log" through here.
		return signaling.NewLog(logger), nil
	}
}

// printBanner displays the startup configuration summary.
func printBanner(cfg *config.Config) {
	fmt.Println("=== blepad ===")
	fmt.Printf("  Signal:  %s\n", describeSignal(cfg))
	fmt.Printf("  Window:  %s\n", bridge.DefaultDiscoveryWindow)
	fmt.Printf("  Poll:    %s\n", bridge.DefaultPollInterval)
	fmt.Printf("  Log:     %s\n", cfg.LogLevel)
	fmt.Println("==============")
}

func describeSignal(cfg *config.Config) string {
	switch cfg.Signal.Backend {
	case "nats":
		return fmt.Sprintf("nats (%s -> %s)", cfg.Signal.NATSURL, cfg.Signal.NATSSubject)
	case "led":
		return fmt.Sprintf("led (%s)", cfg.Signal.LED)
	default:
		return "log"
	}
}
