package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	Log     LogConfig
	Metrics MetricsConfig
	Rules   RulesConfig
	Combat  CombatConfig
	DND5E   DND5EConfig
	Access  AccessConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration. An empty URL runs on
// in-memory repositories.
type RedisConfig struct {
	URL            string        `env:"REDIS_URL"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// MetricsConfig controls the Prometheus endpoint. An empty address disables it.
type MetricsConfig struct {
	Addr string `env:"METRICS_ADDR" envDefault:":9090"`
}

// RulesConfig selects the ruleset for campaigns that name none
type RulesConfig struct {
	DefaultRuleset string `env:"RULES_DEFAULT" envDefault:"tormenta20"`
}

// CombatConfig tunes the combat service
type CombatConfig struct {
	MailboxIdleTimeout time.Duration `env:"COMBAT_MAILBOX_IDLE_TIMEOUT" envDefault:"2m"`
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	Enabled bool          `env:"DND5E_ENABLED" envDefault:"true"`
	Timeout time.Duration `env:"DND5E_TIMEOUT" envDefault:"10s"`
}

// AccessConfig lists the Discord user ids allowed to run GM commands. Empty allows everyone.
type AccessConfig struct {
	AllowedUsers []string `env:"ACCESS_ALLOWED_USERS" envSeparator:","`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// a missing .env is fine; real deployments use the environment
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// ValidateDiscord checks the fields the bot needs to connect
func (c *Config) ValidateDiscord() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is required"))
	}
	if c.Discord.AppID == "" {
		errs = append(errs, errors.New("DISCORD_APP_ID is required"))
	}
	return errors.Join(errs...)
}
