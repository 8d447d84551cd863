package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultValues(t *testing.T) {
	// Blank out the variables so defaults apply regardless of the
	// runner's environment or a stray .env file.
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/studyhub.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "port override",
			envVars: map[string]string{
				"PORT": "9090",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, 9090, cfg.Port)
			},
		},
		{
			name: "db path override",
			envVars: map[string]string{
				"DB_PATH": "/var/lib/studyhub/prod.db",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "/var/lib/studyhub/prod.db", cfg.DBPath)
			},
		},
		{
			name: "log level override",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				os.Setenv(key, value)
				defer os.Unsetenv(key)
			}

			cfg, err := New()
			require.NoError(t, err)

			tt.expected(cfg)
		})
	}
}

func TestNew_InvalidPort(t *testing.T) {
	os.Setenv("PORT", "not-a-number")
	defer os.Unsetenv("PORT")

	_, err := New()
	assert.Error(t, err)
}
