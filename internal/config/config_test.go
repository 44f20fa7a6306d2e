package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProductionConfig() *Config {
	return &Config{
		Port:       "8080",
		JWTSecret:  "a-real-secret-that-is-long-enough-123",
		DBPassword: "s3cure-db-password",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestValidate_Development(t *testing.T) {
	cfg := &Config{
		Port:      "8080",
		JWTSecret: "your-secret-key-change-in-production",
		Env:       "development",
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RequiredFields(t *testing.T) {
	cfg := &Config{JWTSecret: "secret"}
	assert.Error(t, cfg.Validate(), "missing port")

	cfg = &Config{Port: "8080"}
	assert.Error(t, cfg.Validate(), "missing JWT secret")
}

func TestValidate_ProductionStrictness(t *testing.T) {
	cfg := validProductionConfig()
	assert.NoError(t, cfg.Validate())

	cfg = validProductionConfig()
	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate(), "default JWT secret rejected in production")

	cfg = validProductionConfig()
	cfg.JWTSecret = "too-short"
	assert.Error(t, cfg.Validate(), "short JWT secret rejected in production")

	cfg = validProductionConfig()
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate(), "default DB password rejected in production")
}
