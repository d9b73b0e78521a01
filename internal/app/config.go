package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/eventbot/core/config"
	coredatabase "github.com/m3rciful/eventbot/core/database"
	"github.com/m3rciful/eventbot/internal/payment"
)

// FlowConfig tunes the conversation flows and session lifecycle.
type FlowConfig struct {
	// WatchdogDelaySeconds is how long a stalled registration waits before
	// the nudge; 0 -> 300.
	WatchdogDelaySeconds int `yaml:"watchdog_delay_seconds" envconfig:"FLOW_WATCHDOG_DELAY_SECONDS"`
	// SessionDurationHours sets end_time = game date + duration; 0 -> 3.
	SessionDurationHours int `yaml:"session_duration_hours" envconfig:"FLOW_SESSION_DURATION_HOURS"`
	// CardImageDir holds loyalty card images card_<n>.png; empty -> images.
	CardImageDir string `yaml:"card_image_dir" envconfig:"FLOW_CARD_IMAGE_DIR"`
}

// WatchdogDelay returns the nudge delay as a duration.
func (f FlowConfig) WatchdogDelay() time.Duration {
	return time.Duration(f.WatchdogDelaySeconds) * time.Second
}

// SessionDuration returns the session lifetime as a duration.
func (f FlowConfig) SessionDuration() time.Duration {
	return time.Duration(f.SessionDurationHours) * time.Hour
}

// Config aggregates everything the bot process needs.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Payment  payment.Config      `yaml:"payment"`
	Flow     FlowConfig          `yaml:"flow"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// Load reads YAML config, applies env overrides, and validates.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("app: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("app: parse config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("app: process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Payment.StripeSecretKey) == "" {
		return fmt.Errorf("app: payment.stripe_secret_key is required")
	}
	if strings.TrimSpace(cfg.Payment.WebhookSecret) == "" {
		return fmt.Errorf("app: payment.webhook_secret is required")
	}
	if strings.TrimSpace(cfg.Payment.PublicURL) == "" {
		return fmt.Errorf("app: payment.public_url is required")
	}
	if cfg.Payment.Amount <= 0 {
		return fmt.Errorf("app: payment.amount must be > 0")
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "PLN"
	}
	if cfg.Payment.Listen == "" {
		cfg.Payment.Listen = ":4242"
	}

	if cfg.Flow.WatchdogDelaySeconds < 0 {
		return fmt.Errorf("app: flow.watchdog_delay_seconds must be >= 0")
	}
	if cfg.Flow.WatchdogDelaySeconds == 0 {
		cfg.Flow.WatchdogDelaySeconds = 300
	}
	if cfg.Flow.SessionDurationHours < 0 {
		return fmt.Errorf("app: flow.session_duration_hours must be >= 0")
	}
	if cfg.Flow.SessionDurationHours == 0 {
		cfg.Flow.SessionDurationHours = 3
	}
	if cfg.Flow.CardImageDir == "" {
		cfg.Flow.CardImageDir = "images"
	}
	return nil
}
