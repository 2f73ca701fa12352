package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("AWS_REGION", "eu-central-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ADMIN_EMAIL", "admin@calmicasa.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "calmicasa", cfg.Mongo.Database)
	assert.Equal(t, "calmicasa", cfg.AWS.Bucket)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.ExpiryDuration)
	assert.Equal(t, 587, cfg.Mail.SMTPPort)
	assert.Equal(t, "CalmiCasa", cfg.Mail.FromName)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MONGODB_DATABASE", "calmicasa_staging")
	t.Setenv("ASSET_BUCKET", "calmicasa-staging")
	t.Setenv("JWT_EXPIRY", "12h")
	t.Setenv("SMTP_PORT", "465")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "calmicasa_staging", cfg.Mongo.Database)
	assert.Equal(t, "calmicasa-staging", cfg.AWS.Bucket)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryDuration)
	assert.Equal(t, 465, cfg.Mail.SMTPPort)
}

func TestLoad_JWTExpiryAsHours(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_EXPIRY", "720")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, cfg.JWT.ExpiryDuration)
}

func TestLoad_MissingRequired(t *testing.T) {
	required := []string{
		"MONGODB_URI",
		"AWS_REGION",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"JWT_SECRET",
		"ADMIN_EMAIL",
	}

	for _, key := range required {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_AdminCredentialModes(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err, "some admin secret must be configured")

	t.Setenv("ADMIN_PASSWORD", "legacy-plaintext")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-plaintext", cfg.Admin.Password)
}

func TestGetIntEnv_GarbageFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 587, cfg.Mail.SMTPPort)
}
