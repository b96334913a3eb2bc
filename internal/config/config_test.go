package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "ENV", "AUTH_STRATEGY", "ALLOWED_ORIGINS", "FRONTEND_URL",
		"MONGODB_URI", "MONGODB_DATABASE", "TREND_CACHE_TTL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, AuthSession, cfg.AuthStrategy)
	assert.Equal(t, "serenify", cfg.MongoDatabase)
	assert.Equal(t, 5*time.Minute, cfg.TrendCacheTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", " Production ")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,https://A.example.com")
	t.Setenv("MONGODB_URI", "mongodb+srv://u:p@cluster0.example.net/journals?retryWrites=true")
	unsetEnv(t, "MONGODB_DATABASE", "AUTH_STRATEGY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "journals", cfg.MongoDatabase)
}

func TestLoad_JWTRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_STRATEGY", "jwt")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", strings.Repeat("k", 32))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, AuthJWT, cfg.AuthStrategy)
}

func TestLoad_UnknownStrategy(t *testing.T) {
	t.Setenv("AUTH_STRATEGY", "cookie")
	_, err := Load()
	require.Error(t, err)
}

func TestDatabaseFromURI(t *testing.T) {
	assert.Equal(t, "serenify", databaseFromURI("mongodb://localhost:27017"))
	assert.Equal(t, "serenify", databaseFromURI("mongodb://localhost:27017/"))
	assert.Equal(t, "serenify", databaseFromURI("mongodb://localhost:27017/?ssl=true"))
	assert.Equal(t, "mood", databaseFromURI("mongodb://localhost:27017/mood"))
	assert.Equal(t, "mood", databaseFromURI("mongodb://h1,h2/mood?replicaSet=rs0"))
}

// unsetEnv removes keys for the duration of the test; t.Setenv restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
