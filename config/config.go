package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Remote catalog API
	CatalogAPIURL     string
	CatalogAPITimeout time.Duration

	// Session state persistence: "file" (default), "postgres" or "memory"
	KVBackend string
	StateDir  string
	DBUrl     string
	// DB Config (postgres backend only)
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration

	// CORS
	AllowedOrigin string

	// Session cookie
	SessionCookieName   string
	SessionCookieMaxAge time.Duration
	SessionCookieSecure bool

	// Cache TTLs
	CacheProductTTL  time.Duration
	CacheCategoryTTL time.Duration

	// Rate limiting
	RateLimitRPS   int
	RateLimitBurst int

	// Business Rules
	MaxCartQuantity int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev).
		// In docker/prod envs .env might not exist and we rely on system env vars.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CatalogAPIURL:     getEnv("CATALOG_API_URL", ""),
		CatalogAPITimeout: getDurationEnv("CATALOG_API_TIMEOUT", 10*time.Second),

		KVBackend: getEnv("KV_BACKEND", "file"),
		StateDir:  getEnv("STATE_DIR", "./data/state"),
		DBUrl:     getEnv("DB_DSN", ""),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "mm_session"),
		SessionCookieMaxAge: getDurationEnv("SESSION_COOKIE_MAX_AGE", 30*24*time.Hour),
		SessionCookieSecure: getBoolEnv("SESSION_COOKIE_SECURE", false),

		// Cache defaults: 10m Product, 30m Category
		CacheProductTTL:  getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),
		CacheCategoryTTL: getDurationEnv("CACHE_CATEGORY_TTL", 30*time.Minute),

		RateLimitRPS:   getIntEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		// Business rules: 100 max quantity per cart line
		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 100),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.CatalogAPIURL == "" {
		log.Fatal("CRITICAL: CATALOG_API_URL environment variable is required")
	}
	switch c.KVBackend {
	case "file", "memory":
	case "postgres":
		if c.DBUrl == "" {
			log.Fatal("CRITICAL: DB_DSN is required when KV_BACKEND=postgres")
		}
	default:
		log.Fatalf("CRITICAL: unknown KV_BACKEND %q (want file, postgres or memory)", c.KVBackend)
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
