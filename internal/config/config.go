package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	notifiers := cfg.Notifiers[:0]
	for _, n := range cfg.Notifiers {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			notifiers = append(notifiers, n)
		}
	}
	cfg.Notifiers = notifiers
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, n := range c.Notifiers {
		switch n {
		case NotifierDiscord:
			if c.Discord.BotToken == "" || c.Discord.AnnounceChannelID == "" {
				return fmt.Errorf("notifier %q needs DISCORD_BOT_TOKEN and DISCORD_ANNOUNCE_CHANNEL_ID", n)
			}
		case NotifierSlack:
			if c.Slack.Token == "" || c.Slack.ChannelID == "" {
				return fmt.Errorf("notifier %q needs SLACK_BOT_TOKEN and SLACK_CHANNEL_ID", n)
			}
		case NotifierNone:
		default:
			return fmt.Errorf("unknown notifier %q", n)
		}
	}
	if c.Turso.PrimaryURL != "" && c.Turso.AuthToken == "" {
		return fmt.Errorf("TURSO_AUTH_TOKEN is required with TURSO_PRIMARY_URL")
	}
	return nil
}

// Uses reports whether the named notifier is enabled.
func (c Config) Uses(notifier string) bool {
	return slices.Contains(c.Notifiers, notifier)
}
