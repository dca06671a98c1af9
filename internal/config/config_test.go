package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/tabletop-ledger/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_APP_ID", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.Equal(t, "tormenta20", cfg.Rules.DefaultRuleset)
	assert.Equal(t, 2*time.Minute, cfg.Combat.MailboxIdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.Redis.ConnectTimeout)
	assert.Empty(t, cfg.Redis.URL)
	assert.Error(t, cfg.ValidateDiscord())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "app")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COMBAT_MAILBOX_IDLE_TIMEOUT", "45s")
	t.Setenv("ACCESS_ALLOWED_USERS", "u1,u2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.NoError(t, cfg.ValidateDiscord())
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 45*time.Second, cfg.Combat.MailboxIdleTimeout)
	assert.Equal(t, []string{"u1", "u2"}, cfg.Access.AllowedUsers)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("COMBAT_MAILBOX_IDLE_TIMEOUT", "soon")

	_, err := config.Load()
	assert.Error(t, err)
}
