package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// PlatformDisgo runs the bot on Discord with disgo.
	PlatformDisgo = "disgo"
	// PlatformDiscordGo runs the bot on Discord with discordgo.
	PlatformDiscordGo = "discordgo"
	// PlatformTelebot runs the bot on Telegram with telebot.
	PlatformTelebot = "telebot"
)

// BotConfig holds the chat platform connection settings.
type BotConfig struct {
	Platform string `yaml:"platform" envconfig:"PAGERBOT_PLATFORM"`
	Token    string `yaml:"token" envconfig:"BOT_TOKEN"`
	// Command triggers a paginator. Defaults to "!pages" on Discord and "/pages" on Telegram.
	Command string `yaml:"command" envconfig:"PAGERBOT_COMMAND"`
}

// PaginatorConfig mirrors the paginator options exposed to the bot owner.
type PaginatorConfig struct {
	Header             string   `yaml:"header"`
	Pages              []string `yaml:"pages"`
	TimeoutSeconds     int      `yaml:"timeout_seconds" envconfig:"PAGERBOT_TIMEOUT_SECONDS"`
	Extend             bool     `yaml:"extend"`
	OnlyAuthor         bool     `yaml:"only_author"`
	DeleteAfterTimeout bool     `yaml:"delete_after_timeout"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// Config aggregates the pagerbot configuration.
type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Paginator PaginatorConfig `yaml:"paginator"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Bot.Token) == "" {
		return fmt.Errorf("bot token is required")
	}

	platform := strings.ToLower(strings.TrimSpace(cfg.Bot.Platform))
	if platform == "" {
		platform = PlatformDisgo
	}
	switch platform {
	case PlatformDisgo, PlatformDiscordGo:
		if cfg.Bot.Command == "" {
			cfg.Bot.Command = "!pages"
		}
	case PlatformTelebot:
		if cfg.Bot.Command == "" {
			cfg.Bot.Command = "/pages"
		}
	default:
		return fmt.Errorf("invalid bot.platform %q; allowed: disgo, discordgo, telebot", cfg.Bot.Platform)
	}
	cfg.Bot.Platform = platform

	if len(cfg.Paginator.Pages) == 0 {
		return fmt.Errorf("paginator.pages must not be empty")
	}
	if cfg.Paginator.TimeoutSeconds == 0 {
		cfg.Paginator.TimeoutSeconds = 30
	}
	if cfg.Paginator.TimeoutSeconds < 0 {
		return fmt.Errorf("paginator.timeout_seconds must be > 0")
	}
	return nil
}
