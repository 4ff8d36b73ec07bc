package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp isolates Load from any .env or secrets.toml in the repo tree.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) }) //nolint:errcheck
	return dir
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("API_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("API_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "insurance_claims", cfg.Database.Name)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "facebook/bart-large-mnli", cfg.Classifier.Model)
	assert.Equal(t, 30*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Agent.Timeout)
	assert.False(t, cfg.Fraud.CacheEnabled)
	assert.Equal(t, 10*time.Minute, cfg.Fraud.CacheTTL)
	assert.Equal(t, 1, cfg.Audit.Workers)
	assert.Equal(t, 3, cfg.Audit.MaxRetries)
	assert.Equal(t, time.Second, cfg.Audit.RetryDelay)
}

func TestLoadAPIKeyFromSecretsFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("API_KEY", "")

	secrets := "[api]\napi_key = \"toml-key\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secrets.toml"), []byte(secrets), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "toml-key", cfg.APIKey)
}

func TestLoadAPIKeyEnvironmentBeatsSecretsFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("API_KEY", "env-key")

	secrets := "[api]\napi_key = \"toml-key\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secrets.toml"), []byte(secrets), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoadFailsWithoutAPIKey(t *testing.T) {
	chdirTemp(t)
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY not set")
}

func TestLoadFailsWhenSecretsFileLacksKey(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("API_KEY", "")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "secrets.toml"), []byte("[api]\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no api.api_key entry")
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("API_KEY", "env-key")
	// godotenv exports .env entries into the process environment; registering the
	// keys here restores them when the test ends.
	for _, key := range []string{"PORT", "DB_NAME", "FRAUD_CACHE_ENABLED", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	env := "PORT=9000\nDB_NAME=claims_test\nFRAUD_CACHE_ENABLED=true\nALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "claims_test", cfg.Database.Name)
	assert.True(t, cfg.Fraud.CacheEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,"))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("1m", time.Second))
	assert.Equal(t, time.Second, parseDuration("", time.Second))
	assert.Equal(t, time.Second, parseDuration("bogus", time.Second))
}
