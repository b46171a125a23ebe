package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                 "production",
		Port:                "5000",
		DBDriver:            "postgres",
		DBPassword:          "secure-password",
		DBSSLMode:           "require",
		JWTSecret:           "secure-secret-at-least-32-chars-long",
		JWTTTLHours:         120,
		TracingSamplerRatio: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid production", func(c *Config) {}, false},
		{"default secret in production", func(c *Config) { c.JWTSecret = DefaultJWTSecret }, true},
		{"short secret in production", func(c *Config) { c.JWTSecret = "short" }, true},
		{"short secret in development", func(c *Config) { c.Env = "development"; c.JWTSecret = "short" }, false},
		{"sqlite in production", func(c *Config) { c.DBDriver = "sqlite" }, true},
		{"sqlite in test", func(c *Config) { c.Env = "test"; c.DBDriver = "sqlite" }, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"weak db password", func(c *Config) { c.DBPassword = "password" }, true},
		{"ssl disabled in production", func(c *Config) { c.DBSSLMode = "disable" }, true},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"zero token ttl", func(c *Config) { c.JWTTTLHours = 0 }, true},
		{"sampler ratio out of range", func(c *Config) { c.TracingSamplerRatio = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverridesAndNormalization(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLite ")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("PORT", "9999")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, 120, c.JWTTTLHours)
	assert.Equal(t, "https://api.github.com", c.GithubAPIURL)
}

func TestConfig_TokenTTL(t *testing.T) {
	c := &Config{JWTTTLHours: 2}
	assert.Equal(t, "2h0m0s", c.TokenTTL().String())
}
