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

// Names of the recognised CMS environment variables.
const (
	EnvSanityProjectID     = "NEXT_PUBLIC_SANITY_PROJECT_ID"
	EnvSanityDataset       = "NEXT_PUBLIC_SANITY_DATASET"
	EnvSanityAPIVersion    = "NEXT_PUBLIC_SANITY_API_VERSION"
	EnvSanityReadToken     = "SANITY_API_READ_TOKEN"
	EnvSanityPreviewSecret = "SANITY_PREVIEW_SECRET"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Sanity       SanityEnvConfig
	ContentCache ContentCacheConfig
	Warmup       WarmupConfig
}

type RedisConfig struct {
	// URL, when set, takes precedence over the discrete settings.
	URL      string
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

// SanityEnvConfig holds the raw CMS environment values. No defaults are applied here so that
// absent variables remain distinguishable from placeholders.
type SanityEnvConfig struct {
	ProjectID     string
	Dataset       string
	APIVersion    string
	ReadToken     string
	PreviewSecret string

	// AppEnv mirrors Config.Env; CDN reads are enabled outside development.
	AppEnv      string
	HTTPTimeout time.Duration
}

// Lookup returns the raw value for one of the recognised variable names.
func (s SanityEnvConfig) Lookup(name string) string {
	switch name {
	case EnvSanityProjectID:
		return s.ProjectID
	case EnvSanityDataset:
		return s.Dataset
	case EnvSanityAPIVersion:
		return s.APIVersion
	case EnvSanityReadToken:
		return s.ReadToken
	case EnvSanityPreviewSecret:
		return s.PreviewSecret
	default:
		return ""
	}
}

// ContentCacheConfig controls caching of successful live CMS responses in Redis.
type ContentCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// WarmupConfig controls the startup cache warm-up queue.
type WarmupConfig struct {
	Enabled bool
	Workers int
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.Env == EnvDevelopment
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
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		URL:      v.GetString("REDIS_URL"),
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

	cfg.Sanity = SanityEnvConfig{
		ProjectID:     v.GetString(EnvSanityProjectID),
		Dataset:       v.GetString(EnvSanityDataset),
		APIVersion:    v.GetString(EnvSanityAPIVersion),
		ReadToken:     v.GetString(EnvSanityReadToken),
		PreviewSecret: v.GetString(EnvSanityPreviewSecret),
		AppEnv:        cfg.Env,
		HTTPTimeout:   parseDuration(v.GetString("SANITY_HTTP_TIMEOUT"), 10*time.Second),
	}

	cfg.ContentCache = ContentCacheConfig{
		Enabled: v.GetBool("ENABLE_CONTENT_CACHE"),
		TTL:     parseDuration(v.GetString("CONTENT_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Warmup = WarmupConfig{
		Enabled: v.GetBool("ENABLE_CONTENT_WARMUP"),
		Workers: v.GetInt("CONTENT_WARMUP_WORKERS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SANITY_HTTP_TIMEOUT", "10s")

	v.SetDefault("ENABLE_CONTENT_CACHE", false)
	v.SetDefault("CONTENT_CACHE_TTL", "5m")
	v.SetDefault("ENABLE_CONTENT_WARMUP", false)
	v.SetDefault("CONTENT_WARMUP_WORKERS", 2)
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
