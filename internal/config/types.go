package config

// Notifier names accepted in NOTIFIER.
const (
	NotifierDiscord = "discord"
	NotifierSlack   = "slack"
	NotifierNone    = "none"
)

// Config holds all configuration for the application.
type Config struct {
	DBName     string   `env:"DB_NAME" envDefault:"valorant.db"`
	Port       string   `env:"PORT" envDefault:"8080"`
	ProjectID  string   `env:"GCP_PROJECT"`
	AdminToken string   `env:"ADMIN_TOKEN,required,notEmpty"`
	Notifiers  []string `env:"NOTIFIER" envSeparator:"," envDefault:"none"`
	LogFormat  string   `env:"LOG_FORMAT" envDefault:"json"`

	Turso   TursoConfig   `envPrefix:"TURSO_"`
	Discord DiscordConfig `envPrefix:"DISCORD_"`
	Slack   SlackConfig   `envPrefix:"SLACK_"`
}

type TursoConfig struct {
	PrimaryURL string `env:"PRIMARY_URL"`
	AuthToken  string `env:"AUTH_TOKEN"`
}

type DiscordConfig struct {
	BotToken          string `env:"BOT_TOKEN"`
	GuildID           string `env:"GUILD_ID"`
	CategoryID        string `env:"CATEGORY_ID"`
	AnnounceChannelID string `env:"ANNOUNCE_CHANNEL_ID"`
}

type SlackConfig struct {
	Token         string `env:"BOT_TOKEN"`
	ChannelID     string `env:"CHANNEL_ID"`
	SigningSecret string `env:"SIGNING_SECRET"`
}

// PubSubEnabled reports whether channel jobs go through Pub/Sub.
func (c Config) PubSubEnabled() bool {
	return c.ProjectID != ""
}

// ChannelsEnabled reports whether match channels are created in Discord.
func (c Config) ChannelsEnabled() bool {
	return c.Discord.BotToken != "" && c.Discord.GuildID != ""
}
