package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRATION", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "RITE", cfg.Certificates.IDPrefix)
	assert.Equal(t, 5, cfg.Certificates.MaxAttempts)
	assert.Equal(t, EnvDevelopment, cfg.Env)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}

func TestLoadRejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("ENV", EnvProduction)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-long-production-secret-value")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
}

func TestValidate(t *testing.T) {
	valid := Config{Env: EnvDevelopment, Port: 8080, APIPrefix: "/api/v1", Certificates: CertificateConfig{MaxAttempts: 5}}
	assert.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"port":     func(c *Config) { c.Port = 0 },
		"prefix":   func(c *Config) { c.APIPrefix = "api" },
		"attempts": func(c *Config) { c.Certificates.MaxAttempts = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
