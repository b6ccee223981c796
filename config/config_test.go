package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.UserTokenTTL)
	assert.Equal(t, 8*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.True(t, cfg.DoSeed)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "8080")
	t.Setenv("USER_TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://gardentss.edu.zm,https://admin.gardentss.edu.zm")
	t.Setenv("DO_SEED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.UserTokenTTL)
	assert.Equal(t, []string{"https://gardentss.edu.zm", "https://admin.gardentss.edu.zm"}, cfg.CORSOrigins)
	assert.False(t, cfg.DoSeed)
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_BadMaxConns(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DB_MAX_CONNS", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_MAX_CONNS")
}
