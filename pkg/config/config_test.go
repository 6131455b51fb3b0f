package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMISSIONS_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 480, cfg.SessionTTLMinutes)
	assert.Equal(t, 0, cfg.ScoreMin)
	assert.Equal(t, 10, cfg.ScoreMax)
	assert.Equal(t, "default", cfg.Source("session_ttl_minutes"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("session_ttl_minutes: 60\nscore_min: 1\nscore_max: 5\ntrusted_proxies:\n  - 10.0.0.0/8\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o644))
	t.Setenv("ADMISSIONS_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.SessionTTLMinutes)
	assert.Equal(t, 1, cfg.ScoreMin)
	assert.Equal(t, 5, cfg.ScoreMax)
	assert.Equal(t, "file", cfg.Source("session_ttl_minutes"))
	assert.True(t, cfg.IsTrustedProxy("10.1.2.3"))
	assert.False(t, cfg.IsTrustedProxy("192.168.0.1"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("session_ttl_minutes: 60\n"), 0o644))
	t.Setenv("ADMISSIONS_CONFIG_PATH", dir)
	t.Setenv("ADMISSIONS_SESSION_TTL_MINUTES", "15")
	t.Setenv("ADMISSIONS_SESSION_KEY", "super-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.SessionTTLMinutes)
	assert.Equal(t, "environment", cfg.Source("session_ttl_minutes"))
	assert.Equal(t, "super-secret", cfg.SessionSigningKey)
}

func TestValidate(t *testing.T) {
	cfg := newDefault()
	assert.NoError(t, cfg.Validate())

	cfg.ScoreMin = 10
	cfg.ScoreMax = 10
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.TrustedProxies = []string{"not-a-cidr"}
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.MailAPIEndpoint = "https://mail.example.com/send"
	assert.Error(t, cfg.Validate(), "mail endpoint without API key should fail")
}
