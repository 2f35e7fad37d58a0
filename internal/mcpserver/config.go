package mcpserver

import (
	"go/token"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oastubs/mapper"
	"github.com/erraggy/oastubs/stubgen"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Walk tool defaults.
	WalkLimit int
	MaxLimit  int

	// Mapping limits.
	MaxDepth      int
	MaxInlineSize int64

	// Stub defaults.
	StubsPackage    string
	StubsBaseURLEnv string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASTUBS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASTUBS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASTUBS_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASTUBS_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASTUBS_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASTUBS_CACHE_SWEEP_INTERVAL", 60*time.Second),
		WalkLimit:          envInt("OASTUBS_WALK_LIMIT", 100),
		MaxLimit:           envInt("OASTUBS_MAX_LIMIT", 1000),
		MaxDepth:           envInt("OASTUBS_MAX_DEPTH", mapper.DefaultMaxDepth),
		MaxInlineSize:      int64(envInt("OASTUBS_MAX_INLINE_SIZE", 10*1024*1024)),
		StubsPackage:       envIdentifier("OASTUBS_STUBS_PACKAGE", stubgen.DefaultPackageName),
		StubsBaseURLEnv:    envString("OASTUBS_STUBS_BASE_URL_ENV", stubgen.DefaultBaseURLEnv),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIdentifier accepts only values usable as a Go package name.
func envIdentifier(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !token.IsIdentifier(v) {
		slog.Warn("invalid identifier env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
