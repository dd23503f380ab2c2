package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skyguard-wallet/skyguard-go/pkg/transport"
)

// Config holds the emulator configuration.
type Config struct {
	ConfigFile string `yaml:"-"`

	Address      string        `yaml:"address"`
	StoragePath  string        `yaml:"storage"`
	ProtocolLog  string        `yaml:"protocol_log"`
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"`
	DebugLink    bool          `yaml:"debug_link"`
	Interactive  bool          `yaml:"interactive"`
	Buttons      string        `yaml:"buttons"`
	Label        string        `yaml:"label"`

	MDNS MDNSConfig `yaml:"mdns"`
}

// MDNSConfig controls the mDNS advertisement.
type MDNSConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Interface string `yaml:"interface"`
}

// loadConfigFile overlays the YAML file at path onto cfg. Keys absent from
// the file keep their flag values.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Address == "" {
		cfg.Address = transport.DefaultAddress
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = "skyguard-storage.json"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Second
	}
}

func validateConfig(cfg *Config) error {
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.TickInterval < 10*time.Millisecond {
		return fmt.Errorf("tick interval must be at least 10ms, got %s", cfg.TickInterval)
	}
	if _, err := parseButtons(cfg.Buttons); err != nil {
		return err
	}
	if cfg.Interactive && cfg.Buttons != "" {
		return fmt.Errorf("-buttons cannot be combined with the interactive console")
	}
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
