package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("STORAGE_PROVIDER", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "atelier", cfg.Metrics.Namespace)
	assert.Equal(t, uint16(8080), cfg.MockAPI.Port)
	assert.True(t, cfg.MockAPI.Seed)
	assert.Empty(t, cfg.MockAPI.CORSOrigins)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("API_BASE_URL", "https://shop.example.com/api")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("API_CIRCUIT_BREAKER", "true")
	t.Setenv("STORAGE_PROVIDER", "memory")
	t.Setenv("MOCKAPI_RATE_LIMIT", "2.5")
	t.Setenv("MOCKAPI_CORS_ORIGINS", " http://localhost:5173, ,https://shop.example.com ")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.API.Breaker)
	assert.Equal(t, "memory", cfg.Storage.Provider)
	assert.Equal(t, 2.5, cfg.MockAPI.RateLimit)
	assert.Equal(t, []string{"http://localhost:5173", "https://shop.example.com"}, cfg.MockAPI.CORSOrigins)
}

func TestNewConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("API_TIMEOUT", "soon")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
}

func TestNewConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "production without encryption key",
			env:  map[string]string{"ENV": "prod", "ENCRYPTION_KEY": ""},
		},
		{
			name: "r2 without account",
			env:  map[string]string{"ENV": "dev", "STORAGE_PROVIDER": "r2", "R2_ACCOUNT_ID": ""},
		},
		{
			name: "r2 without bucket",
			env: map[string]string{
				"ENV":                  "dev",
				"STORAGE_PROVIDER":     "r2",
				"R2_ACCOUNT_ID":        "acct",
				"R2_ACCESS_KEY_ID":     "key",
				"R2_SECRET_ACCESS_KEY": "secret",
				"R2_BUCKET_NAME":       "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
