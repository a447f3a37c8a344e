package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "valorant.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{NotifierNone}, cfg.Notifiers)
	assert.False(t, cfg.PubSubEnabled())
	assert.False(t, cfg.ChannelsEnabled())
}

func TestLoad_NestedPrefixes(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("NOTIFIER", "Discord, slack")
	t.Setenv("GCP_PROJECT", "valorant-prod")
	t.Setenv("DISCORD_BOT_TOKEN", "bot")
	t.Setenv("DISCORD_GUILD_ID", "guild")
	t.Setenv("DISCORD_ANNOUNCE_CHANNEL_ID", "announce")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb")
	t.Setenv("SLACK_CHANNEL_ID", "C1")
	t.Setenv("TURSO_PRIMARY_URL", "libsql://db.turso.io")
	t.Setenv("TURSO_AUTH_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Uses(NotifierDiscord))
	assert.True(t, cfg.Uses(NotifierSlack))
	assert.True(t, cfg.PubSubEnabled())
	assert.True(t, cfg.ChannelsEnabled())
	assert.Equal(t, "guild", cfg.Discord.GuildID)
	assert.Equal(t, "C1", cfg.Slack.ChannelID)
	assert.Equal(t, "libsql://db.turso.io", cfg.Turso.PrimaryURL)
}

func TestLoad_NotifierListSkipsEmptyEntries(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("NOTIFIER", " slack, ,")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb")
	t.Setenv("SLACK_CHANNEL_ID", "C1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{NotifierSlack}, cfg.Notifiers)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("admin token is required", func(t *testing.T) {
		t.Setenv("ADMIN_TOKEN", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown notifier", func(t *testing.T) {
		t.Setenv("ADMIN_TOKEN", "secret")
		t.Setenv("NOTIFIER", "carrier-pigeon")
		_, err := Load()
		assert.ErrorContains(t, err, "unknown notifier")
	})

	t.Run("slack without token", func(t *testing.T) {
		t.Setenv("ADMIN_TOKEN", "secret")
		t.Setenv("NOTIFIER", "slack")
		_, err := Load()
		assert.ErrorContains(t, err, "SLACK_BOT_TOKEN")
	})
}
