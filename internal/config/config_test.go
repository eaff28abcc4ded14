package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("HOLIDAY_ALLOWANCE", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.SeedData)
	assert.Equal(t, 25, cfg.Holiday.Allowance)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.App.AllowedOrigins)
	assert.False(t, cfg.OAuth2Google.Enabled())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET_KEY")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Storage:   StorageConfig{Driver: StorageMemory},
			JWT:       JWTConfig{Secret: "s", AccessExpiration: "1h"},
			Holiday:   HolidayConfig{Allowance: 25},
			RateLimit: RateLimitConfig{LoginPerMinute: 10, LoginBurst: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid memory", mutate: func(c *Config) {}},
		{name: "postgres without password", mutate: func(c *Config) { c.Storage.Driver = StoragePostgres }, wantErr: "DB_PASSWORD"},
		{name: "postgres with password", mutate: func(c *Config) {
			c.Storage.Driver = StoragePostgres
			c.Database.Password = "pw"
		}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "redis" }, wantErr: "STORAGE_DRIVER"},
		{name: "bad expiration", mutate: func(c *Config) { c.JWT.AccessExpiration = "soon" }, wantErr: "JWT_ACCESS_EXPIRATION_TIME"},
		{name: "partial oauth", mutate: func(c *Config) { c.OAuth2Google.ClientID = "id" }, wantErr: "CLIENT_SECRET"},
		{name: "negative allowance", mutate: func(c *Config) { c.Holiday.Allowance = -1 }, wantErr: "HOLIDAY_ALLOWANCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := &Config{App: AppConfig{LogLevel: "DEBUG"}}
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	cfg.App.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
