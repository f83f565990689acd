package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	App           AppConfig
	API           APIConfig
	Upload        UploadConfig
	DevServer     DevServerConfig
	Storage       StorageConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
}

type AppConfig struct {
	Env      string
	Language string
}

// APIConfig points the forms at the company directory API
type APIConfig struct {
	BaseURL        string
	CompanyPath    string
	ReviewPath     string
	UploadPath     string
	TimeoutSeconds int
}

type UploadConfig struct {
	MaxRetries      int
	CacheTTLSeconds int
}

// DevServerConfig configures the local fake of the company directory API
type DevServerConfig struct {
	Port           string
	GinMode        string
	PublicBaseURL  string
	AllowedOrigins []string
	MaxUploadMB    int
	RateLimitRPS   float64
	RateLimitBurst int
}

// StorageConfig selects where the dev server keeps uploaded assets. An
// empty Bucket keeps them in memory.
type StorageConfig struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	KeyPrefix       string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
	Profiling        ProfilingConfig
}

// ProfilingConfig configures continuous profiling of the dev server
type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("FORM_LANGUAGE", "en")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "./logs")
	v.SetDefault("API_BASE_URL", "http://localhost:8090")
	v.SetDefault("API_COMPANY_PATH", "/company/add")
	v.SetDefault("API_REVIEW_PATH", "/review/add")
	v.SetDefault("API_UPLOAD_PATH", "/upload/image")
	v.SetDefault("API_TIMEOUT_SECONDS", 30)
	v.SetDefault("UPLOAD_MAX_RETRIES", 2)
	v.SetDefault("UPLOAD_CACHE_TTL_SECONDS", 1800) // 30 minutes
	v.SetDefault("DEVSERVER_PORT", "8090")
	v.SetDefault("DEVSERVER_GIN_MODE", "release")
	v.SetDefault("DEVSERVER_PUBLIC_URL", "http://localhost:8090")
	v.SetDefault("DEVSERVER_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEVSERVER_MAX_UPLOAD_MB", 5)
	v.SetDefault("DEVSERVER_RATE_LIMIT_RPS", 10)
	v.SetDefault("DEVSERVER_RATE_LIMIT_BURST", 20)
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_KEY_PREFIX", "company-logos")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "companyforms")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "companyforms-devapi")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Language: v.GetString("FORM_LANGUAGE"),
		},
		API: APIConfig{
			BaseURL:        v.GetString("API_BASE_URL"),
			CompanyPath:    v.GetString("API_COMPANY_PATH"),
			ReviewPath:     v.GetString("API_REVIEW_PATH"),
			UploadPath:     v.GetString("API_UPLOAD_PATH"),
			TimeoutSeconds: v.GetInt("API_TIMEOUT_SECONDS"),
		},
		Upload: UploadConfig{
			MaxRetries:      v.GetInt("UPLOAD_MAX_RETRIES"),
			CacheTTLSeconds: v.GetInt("UPLOAD_CACHE_TTL_SECONDS"),
		},
		DevServer: DevServerConfig{
			Port:           v.GetString("DEVSERVER_PORT"),
			GinMode:        v.GetString("DEVSERVER_GIN_MODE"),
			PublicBaseURL:  v.GetString("DEVSERVER_PUBLIC_URL"),
			AllowedOrigins: splitList(v.GetString("DEVSERVER_ALLOWED_ORIGINS")),
			MaxUploadMB:    v.GetInt("DEVSERVER_MAX_UPLOAD_MB"),
			RateLimitRPS:   v.GetFloat64("DEVSERVER_RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("DEVSERVER_RATE_LIMIT_BURST"),
		},
		Storage: StorageConfig{
			Bucket:          v.GetString("STORAGE_BUCKET"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			PublicURL:       v.GetString("STORAGE_PUBLIC_URL"),
			KeyPrefix:       v.GetString("STORAGE_KEY_PREFIX"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
			Profiling: ProfilingConfig{
				Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
				Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
				AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
				SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
				UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
			},
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping empty entries
func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Remote API
	if err := validateBaseURL("API_BASE_URL", c.API.BaseURL); err != nil {
		return err
	}
	if c.API.CompanyPath == "" || c.API.ReviewPath == "" || c.API.UploadPath == "" {
		return fmt.Errorf("API_COMPANY_PATH, API_REVIEW_PATH and API_UPLOAD_PATH are required")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive")
	}

	if c.App.Language == "" {
		return fmt.Errorf("FORM_LANGUAGE is required")
	}
	if c.Upload.MaxRetries < 0 {
		return fmt.Errorf("UPLOAD_MAX_RETRIES must not be negative")
	}

	// Dev server
	if c.DevServer.Port == "" {
		return fmt.Errorf("DEVSERVER_PORT is required")
	}
	if c.DevServer.MaxUploadMB <= 0 {
		return fmt.Errorf("DEVSERVER_MAX_UPLOAD_MB must be positive")
	}

	// Object storage is optional, but a bucket needs a region
	if c.Storage.Bucket != "" && c.Storage.Region == "" {
		return fmt.Errorf("STORAGE_REGION is required when STORAGE_BUCKET is set")
	}

	if c.Observability.Profiling.Enabled && c.Observability.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

func validateBaseURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
	}
	return nil
}

// APITimeout returns the per-request timeout of the API client
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// UploadCacheTTL returns how long uploaded assets are remembered
func (c *Config) UploadCacheTTL() time.Duration {
	return time.Duration(c.Upload.CacheTTLSeconds) * time.Second
}

// MaxUploadBytes returns the dev server's upload size cap
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.DevServer.MaxUploadMB) << 20
}

// UsesObjectStorage reports whether uploads go to an S3 bucket
func (c *Config) UsesObjectStorage() bool {
	return c.Storage.Bucket != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.DevServer.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
