package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
api:
  environment: development
  port: "8080"
  base_url: localhost:8080
  allowed_cors_domains:
    - http://localhost:3000
  jwt_signing_key: secret
  admin_usernames:
    - "@Owner"
gin:
  mode: debug
postgres:
  host: localhost
  port: "5432"
  user: postgres
  password: postgres
  db: pyramide
  sslmode: disable
otp:
  ttl: 2m
`

func writeConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, 2*time.Minute, conf.OTP.TTL)
	assert.Equal(t, 6, conf.OTP.Length)
	assert.Equal(t, 5, conf.Event.MaxInvitesPerUser)
	assert.Equal(t, "USD", conf.Event.Currency)
	assert.False(t, conf.API.IsProduction())
	assert.Contains(t, conf.Postgres.DSN(), "dbname=pyramide")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_API_PORT", "9999")

	conf, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "9999", conf.API.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestIsAdminUsername(t *testing.T) {
	conf, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.True(t, conf.API.IsAdminUsername("owner"))
	assert.False(t, conf.API.IsAdminUsername("guest"))
}
