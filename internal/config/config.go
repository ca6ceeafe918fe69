package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout; whole-catalog searches need headroom

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Catalog CatalogConfig

	FavoritesSeedFile  string        // optional YAML list of favorites imported at startup and on reload
	ReloadInterval     time.Duration // interval to re-import the seed file (default: 24h)
	CacheSweepInterval time.Duration // interval to evict expired cached responses (default: 1m)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	RedisResponseCache    bool          // true => mirror catalog responses in redis

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to ops endpoints (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst     int // token bucket size per client IP
	RateLimitPerMinute int // refill rate per client IP
}

// CatalogConfig holds the remote catalog client settings shared by both binaries.
type CatalogConfig struct {
	BaseURL string        // ex: "https://pokeapi.co/api/v2"
	Timeout time.Duration // 0 => transport default
	RPS     float64       // outbound requests per second
	Burst   int           // outbound burst
}

// TUIConfig configures the terminal browser.
type TUIConfig struct {
	LogLevel   string
	LogFile    string // zap output; never the terminal
	SQLitePath string // durable favorites store
	Ephemeral  bool   // true => favorites kept in memory for the session only

	Catalog CatalogConfig
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("POKEDEX_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("POKEDEX_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("POKEDEX_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  getenv("POKEDEX_LOG_LEVEL", "info"),
		PrettyLog: mustBool("POKEDEX_PRETTY_LOG", true),

		Catalog: loadCatalog(),

		FavoritesSeedFile:  getenv("POKEDEX_FAVORITES_FILE", ""), // Optional, empty = no seed
		ReloadInterval:     mustDuration("POKEDEX_RELOAD_INTERVAL", 24*time.Hour),
		CacheSweepInterval: mustDuration("POKEDEX_CACHE_SWEEP_INTERVAL", time.Minute),

		// Redis settings
		RedisAddr:             requireEnv("POKEDEX_REDIS_ADDR"),
		RedisUser:             getenv("POKEDEX_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("POKEDEX_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("POKEDEX_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("POKEDEX_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		RedisResponseCache:    mustBool("POKEDEX_REDIS_RESPONSE_CACHE", true),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("POKEDEX_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("POKEDEX_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("POKEDEX_TRUST_PROXY", false),

		RateLimitBurst:     getenvInt("POKEDEX_RATE_LIMIT_BURST", 60),
		RateLimitPerMinute: getenvInt("POKEDEX_RATE_LIMIT_PER_MINUTE", 120),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: POKEDEX_REDIS_PASSWORD is required when POKEDEX_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// LoadTUI reads the terminal browser configuration. Nothing is required.
func LoadTUI() *TUIConfig {
	dir := defaultDataDir()
	return &TUIConfig{
		LogLevel:   getenv("POKEDEX_LOG_LEVEL", "info"),
		LogFile:    getenv("POKEDEX_LOG_FILE", filepath.Join(dir, "pokedex-tui.log")),
		SQLitePath: getenv("POKEDEX_SQLITE_PATH", filepath.Join(dir, "pokedex.db")),
		Ephemeral:  mustBool("POKEDEX_EPHEMERAL", false),
		Catalog:    loadCatalog(),
	}
}

func loadCatalog() CatalogConfig {
	return CatalogConfig{
		BaseURL: strings.TrimSuffix(getenv("POKEDEX_CATALOG_URL", "https://pokeapi.co/api/v2"), "/"),
		Timeout: mustDuration("POKEDEX_CATALOG_TIMEOUT", 0),
		RPS:     getenvFloat("POKEDEX_CATALOG_RPS", 10),
		Burst:   getenvInt("POKEDEX_CATALOG_BURST", 20),
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pokedex")
	}
	return "."
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
