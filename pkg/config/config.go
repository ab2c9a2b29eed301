package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Backend BackendConfig
	App     AppConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	Flash   FlashConfig
	CSRF    CSRFConfig
	Catalog CatalogConfig
	Metrics MetricsConfig
}

// BackendConfig locates the REST API and auth provider.
type BackendConfig struct {
	// URL is the origin used by the proxy routes and session lookups.
	URL string
	// PublicAPIURL overrides the origin used by the page facades.
	PublicAPIURL string
	Timeout      time.Duration
}

// APIBaseURL returns the origin the facades talk to, including the /api prefix.
func (b BackendConfig) APIBaseURL() string {
	origin := b.PublicAPIURL
	if origin == "" {
		origin = b.URL
	}
	return strings.TrimRight(origin, "/") + "/api"
}

// AppConfig describes how the web application is reached by browsers.
type AppConfig struct {
	URL           string
	SecureCookies bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// FlashConfig signs the one-shot notification cookie.
type FlashConfig struct {
	Secret string
	TTL    time.Duration
}

// CSRFConfig toggles form token protection.
type CSRFConfig struct {
	Enabled bool
	Secret  string
}

// CatalogConfig tunes the cached home page catalog.
type CatalogConfig struct {
	CacheEnabled bool
	Revalidate   time.Duration
	CacheTTL     time.Duration
	Workers      int
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Backend = BackendConfig{
		URL:          strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
		PublicAPIURL: strings.TrimRight(v.GetString("NEXT_PUBLIC_API_URL"), "/"),
		Timeout:      parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
	}

	cfg.App = AppConfig{
		URL:           strings.TrimRight(v.GetString("NEXT_PUBLIC_APP_URL"), "/"),
		SecureCookies: v.GetBool("SECURE_COOKIES"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Flash = FlashConfig{
		Secret: v.GetString("FLASH_SECRET"),
		TTL:    parseDuration(v.GetString("FLASH_TTL"), 5*time.Minute),
	}

	cfg.CSRF = CSRFConfig{
		Enabled: v.GetBool("CSRF_ENABLED"),
		Secret:  v.GetString("CSRF_SECRET"),
	}

	workers := v.GetInt("REVALIDATE_WORKERS")
	if workers <= 0 {
		workers = 1
	}
	cfg.Catalog = CatalogConfig{
		CacheEnabled: v.GetBool("ENABLE_CATALOG_CACHE"),
		Revalidate:   parseDuration(v.GetString("CATALOG_REVALIDATE"), time.Hour),
		CacheTTL:     parseDuration(v.GetString("CATALOG_CACHE_TTL"), 24*time.Hour),
		Workers:      workers,
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3000)

	v.SetDefault("BACKEND_URL", "http://localhost:5000")
	v.SetDefault("NEXT_PUBLIC_API_URL", "")
	v.SetDefault("NEXT_PUBLIC_APP_URL", "http://localhost:3000")
	v.SetDefault("API_TIMEOUT", "15s")
	v.SetDefault("SECURE_COOKIES", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("FLASH_SECRET", "dev_flash_secret")
	v.SetDefault("FLASH_TTL", "5m")

	v.SetDefault("CSRF_ENABLED", true)
	v.SetDefault("CSRF_SECRET", "dev_csrf_secret_32_bytes_long!!!")

	v.SetDefault("ENABLE_CATALOG_CACHE", false)
	v.SetDefault("CATALOG_REVALIDATE", "1h")
	v.SetDefault("CATALOG_CACHE_TTL", "24h")
	v.SetDefault("REVALIDATE_WORKERS", 1)

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
