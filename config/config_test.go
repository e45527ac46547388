package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "survey-api", cfg.AppName)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "survey-website", cfg.JWTIssuer)
	assert.Equal(t, "survey-website-users", cfg.JWTAudience)
	assert.Equal(t, []string{"/dashboard"}, cfg.GatePrefixes())
	assert.Equal(t, 5*time.Second, cfg.DBPingTimeout)
	assert.Equal(t, 5*time.Second, cfg.ESDialTimeout)
	assert.Equal(t, 15*time.Second, cfg.MailSendTimeout)
}

func TestValidateRejectsDevSecretsOutsideDevelopment(t *testing.T) {
	cfg := Load()
	require.NoError(t, cfg.Validate())

	cfg.Env = "production"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")

	cfg.JWTAccessSecret = "real-access-secret"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")

	cfg.JWTRefreshSecret = "real-refresh-secret"
	assert.NoError(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "5432",
		DBName: "survey", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@db:5432/survey?sslmode=disable", cfg.PostgresDSN())
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a , b ,"))
	assert.Empty(t, splitCSV(""))
}
