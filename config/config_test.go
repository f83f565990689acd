package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Env: "development", Language: "en"},
		API: APIConfig{
			BaseURL:        "http://localhost:8090",
			CompanyPath:    "/company/add",
			ReviewPath:     "/review/add",
			UploadPath:     "/upload/image",
			TimeoutSeconds: 30,
		},
		Upload:    UploadConfig{MaxRetries: 2, CacheTTLSeconds: 60},
		DevServer: DevServerConfig{Port: "8090", MaxUploadMB: 5},
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name:     "development environment",
			config:   &Config{App: AppConfig{Env: "development"}},
			expected: true,
		},
		{
			name:     "debug gin mode",
			config:   &Config{DevServer: DevServerConfig{GinMode: "debug"}},
			expected: true,
		},
		{
			name:     "production environment",
			config:   &Config{App: AppConfig{Env: "production"}},
			expected: false,
		},
		{
			name: "release mode",
			config: &Config{
				App:       AppConfig{Env: "production"},
				DevServer: DevServerConfig{GinMode: "release"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{App: AppConfig{Env: "production"}}).IsProduction())
	assert.False(t, (&Config{App: AppConfig{Env: "staging"}}).IsProduction())
	assert.False(t, (&Config{App: AppConfig{Env: "development"}}).IsProduction())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "valid configuration",
			mutate: func(c *Config) {},
		},
		{
			name:     "missing base url",
			mutate:   func(c *Config) { c.API.BaseURL = "" },
			errorMsg: "API_BASE_URL is required",
		},
		{
			name:     "relative base url",
			mutate:   func(c *Config) { c.API.BaseURL = "localhost" },
			errorMsg: "API_BASE_URL must be an absolute URL",
		},
		{
			name:     "missing upload path",
			mutate:   func(c *Config) { c.API.UploadPath = "" },
			errorMsg: "API_UPLOAD_PATH",
		},
		{
			name:     "zero timeout",
			mutate:   func(c *Config) { c.API.TimeoutSeconds = 0 },
			errorMsg: "API_TIMEOUT_SECONDS must be positive",
		},
		{
			name:     "missing language",
			mutate:   func(c *Config) { c.App.Language = "" },
			errorMsg: "FORM_LANGUAGE is required",
		},
		{
			name:     "negative retries",
			mutate:   func(c *Config) { c.Upload.MaxRetries = -1 },
			errorMsg: "UPLOAD_MAX_RETRIES",
		},
		{
			name:     "missing dev server port",
			mutate:   func(c *Config) { c.DevServer.Port = "" },
			errorMsg: "DEVSERVER_PORT is required",
		},
		{
			name:     "bucket without region",
			mutate:   func(c *Config) { c.Storage.Bucket = "logos" },
			errorMsg: "STORAGE_REGION is required",
		},
		{
			name: "bucket with region",
			mutate: func(c *Config) {
				c.Storage.Bucket = "logos"
				c.Storage.Region = "eu-central-1"
			},
		},
		{
			name:     "profiling without endpoint",
			mutate:   func(c *Config) { c.Observability.Profiling.Enabled = true },
			errorMsg: "O11Y_PROFILING_ENDPOINT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, 30*time.Second, cfg.APITimeout())
	assert.Equal(t, time.Minute, cfg.UploadCacheTTL())
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
	assert.False(t, cfg.UsesObjectStorage())
}

func TestLoad_WithDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "en", cfg.App.Language)
	assert.Equal(t, "http://localhost:8090", cfg.API.BaseURL)
	assert.Equal(t, "/company/add", cfg.API.CompanyPath)
	assert.Equal(t, "/review/add", cfg.API.ReviewPath)
	assert.Equal(t, "/upload/image", cfg.API.UploadPath)
	assert.Equal(t, 2, cfg.Upload.MaxRetries)
	assert.Equal(t, "8090", cfg.DevServer.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.DevServer.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "company-logos", cfg.Storage.KeyPrefix)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("FORM_LANGUAGE", "de")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("UPLOAD_MAX_RETRIES", "0")
	t.Setenv("DEVSERVER_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("STORAGE_BUCKET", "logos")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "de", cfg.App.Language)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout())
	assert.Equal(t, 0, cfg.Upload.MaxRetries)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.DevServer.AllowedOrigins)
	assert.True(t, cfg.UsesObjectStorage())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FORM_LANGUAGE=fr\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.App.Language)
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_BASE_URL", "not-a-url")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
