// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Development fallbacks for unset secrets. They are refused in production.
const (
	DevJWTSecret     = "dev-jwt-secret-change-me"
	DevSessionSecret = "dev-flash-secret-change-me"
)

// ErrMissingSecret is returned when production runs without a real secret.
var ErrMissingSecret = errors.New("secret must be set in production")

// Config holds the runtime configuration of the server.
// Defaults are tuned for local development with SQLite and local media storage.
type Config struct {
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBDriver      string // sqlite or postgres
	DBDSN         string // postgres DSN
	DBPath        string // sqlite file path
	RunMigrations bool

	// Redis (optional; sessions and cache fall back when unavailable)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	CacheTTL      time.Duration

	// Auth
	JWTSecret     string
	SessionTTL    time.Duration
	SessionSecret string
	CookieSecure  bool

	// TimeZone decides what "today" means for check-ins.
	TimeZone string

	// Media storage
	MediaBackend   string // local or minio
	MediaRoot      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MaxUploadMB    int

	// CORS (comma-separated; empty disables the middleware)
	CORSAllowedOrigins string

	// Login throttling
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		DBDriver:      getenv("DB_DRIVER", "sqlite"),
		DBDSN:         getenv("DB_DSN", ""),
		DBPath:        getenv("DB_PATH", "./lifetrail.db"),
		RunMigrations: getbool("RUN_MIGRATIONS", true),

		RedisHost:     getenv("REDIS_HOST", ""),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		CacheTTL:      getdur("CACHE_TTL", 5*time.Minute),

		JWTSecret:     getenv("JWT_SECRET", ""),
		SessionTTL:    getdur("SESSION_TTL", 14*24*time.Hour),
		SessionSecret: getenv("SESSION_SECRET", ""),
		CookieSecure:  getbool("COOKIE_SECURE", false),

		TimeZone: getenv("TIME_ZONE", "Asia/Shanghai"),

		MediaBackend:   getenv("MEDIA_BACKEND", "local"),
		MediaRoot:      getenv("MEDIA_ROOT", "./media"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "lifetrail-media"),
		MinioUseSSL:    getbool("MINIO_USE_SSL", false),
		MaxUploadMB:    getint("MAX_UPLOAD_MB", 32),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		LoginRateLimit:  getint("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getdur("LOGIN_RATE_WINDOW", time.Minute),
	}
}

// ApplySecretDefaults fills unset secrets with the development fallbacks and
// returns the names of the variables it filled. In production a missing or
// development secret is an error instead.
func (c *Config) ApplySecretDefaults() ([]string, error) {
	secrets := []struct {
		name string
		val  *string
		dev  string
	}{
		{"JWT_SECRET", &c.JWTSecret, DevJWTSecret},
		{"SESSION_SECRET", &c.SessionSecret, DevSessionSecret},
	}

	var filled []string
	for _, s := range secrets {
		if *s.val != "" && *s.val != s.dev {
			continue
		}
		if c.Env == "production" {
			return nil, fmt.Errorf("%s: %w", s.name, ErrMissingSecret)
		}
		if *s.val == "" {
			*s.val = s.dev
			filled = append(filled, s.name)
		}
	}
	return filled, nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// Location resolves TimeZone, falling back to the local zone when unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("invalid TIME_ZONE %q: %v, using local time", c.TimeZone, err)
		return time.Local
	}
	return loc
}

// CORSOrigins returns the allowed origins as slice.
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
