package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "Development defaults pass",
			config: Config{
				Env:        "development",
				Port:       "8280",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "password",
			},
			expectError: false,
		},
		{
			name: "Missing port",
			config: Config{
				Env:       "development",
				JWTSecret: "anything",
			},
			expectError: true,
		},
		{
			name: "Missing JWT secret",
			config: Config{
				Env:  "development",
				Port: "8280",
			},
			expectError: true,
		},
		{
			name: "Production rejects default JWT secret",
			config: Config{
				Env:        "production",
				Port:       "8280",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "secure-password",
			},
			expectError: true,
		},
		{
			name: "Production rejects short JWT secret",
			config: Config{
				Env:        "production",
				Port:       "8280",
				JWTSecret:  "short",
				DBPassword: "secure-password",
			},
			expectError: true,
		},
		{
			name: "Production rejects default DB password",
			config: Config{
				Env:        "production",
				Port:       "8280",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "password",
			},
			expectError: true,
		},
		{
			name: "Production with strong settings passes",
			config: Config{
				Env:        "production",
				Port:       "8280",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "secure-password",
				DBSSLMode:  "require",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8280", c.Port)
	assert.Equal(t, "tripcards", c.DBName)
	assert.Equal(t, "https://api.yelp.com/v3", c.DirectoryBaseURL)
	assert.False(t, c.TracingEnabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9001")
	t.Setenv("DIRECTORY_API_KEY", "env-key")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9001", c.Port)
	assert.Equal(t, "env-key", c.DirectoryAPIKey)
}
