package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[server]
http_port = 9090

[database]
host = "db.internal"
auto_migrate = true

[auth]
jwt_secret = "from-file"

[pricing]
packing_room_rate = "$120.50"

[availability]
apply_extra_capacity = true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Availability.ApplyExtraCapacity)

	cents, err := cfg.Pricing.PackingRoomRateCents()
	require.NoError(t, err)
	assert.Equal(t, int64(12050), cents)

	stairs, err := cfg.Pricing.StairsFlightRateCents()
	require.NoError(t, err)
	assert.Equal(t, int64(2500), stairs)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HAULERS_AUTH_JWTSECRET", "from-env")
	t.Setenv("HAULERS_DB_HOST", "env-host")
	t.Setenv("HAULERS_SERVER_HTTPPORT", "7070")

	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HAULERS_AUTH_JWTSECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.False(t, cfg.Availability.ApplyExtraCapacity)
	assert.Equal(t, 92, cfg.Availability.MaxRangeDays)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Auth.JWTSecret = "x"
	assert.NoError(t, cfg.Validate())

	cfg.Pricing.StairsFlightRate = "twenty"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
