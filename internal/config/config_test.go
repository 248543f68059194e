package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidateProductionHardening(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Default secret rejected", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Short secret rejected", func(c *Config) {
			c.JWTSecret = "short"
		}, true},
		{"Weak DB password rejected", func(c *Config) {
			c.DBPassword = "password"
		}, true},
		{"Hardened config accepted", func(*Config) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        "production",
				Port:       "8460",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "secure-password",
				DBSSLMode:  "require",
			}
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

func TestConfigValidateDevelopmentDefaults(t *testing.T) {
	c := &Config{
		Env:       "development",
		Port:      "8460",
		JWTSecret: "your-secret-key-change-in-production",
	}
	assert.NoError(t, c.Validate())
}

func TestConfigValidateMissingRequired(t *testing.T) {
	assert.Error(t, (&Config{Port: "8460"}).Validate())
	assert.Error(t, (&Config{JWTSecret: "x"}).Validate())
}
