package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":3000"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ConfigDir      string        // directory holding settings/services/bookmarks/widgets YAML
	ReloadInterval time.Duration // interval to reload the config directory (default: 1h)
	WatchConfig    bool          // watch the config directory and reload on change
	WatchDebounce  time.Duration // quiet period after a filesystem event before reloading

	ReleaseFeedURL  string        // release feed endpoint (empty = update check disabled)
	ReleaseInterval time.Duration // interval between release feed polls (default: 6h)

	// Redis (optional: empty addr = memory-only content cache)
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

	AllowedHosts []string // optional, restrict /api/revalidate to specific Host headers
	AllowedCIDRS []string // optional, restrict /api/revalidate to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("GRIDPAGE_LISTEN_PORT", ":3000"),
		ShutdownTimeout: mustDuration("GRIDPAGE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("GRIDPAGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("GRIDPAGE_PRETTY_LOG", true),

		// Content sources
		ConfigDir:      getenv("GRIDPAGE_CONFIG_DIR", "/app/config"),
		ReloadInterval: mustDuration("GRIDPAGE_RELOAD_INTERVAL", time.Hour),
		WatchConfig:    mustBool("GRIDPAGE_WATCH_CONFIG", true),
		WatchDebounce:  mustDuration("GRIDPAGE_WATCH_DEBOUNCE", 500*time.Millisecond),

		// Update check
		ReleaseFeedURL:  getenv("GRIDPAGE_RELEASE_FEED_URL", "https://api.github.com/repos/gridpage/gridpage/releases"),
		ReleaseInterval: mustDuration("GRIDPAGE_RELEASE_INTERVAL", 6*time.Hour),

		// Redis settings (optional)
		RedisAddr:             getenv("GRIDPAGE_REDIS_ADDR", ""),
		RedisUser:             getenv("GRIDPAGE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("GRIDPAGE_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("GRIDPAGE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("GRIDPAGE_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions (revalidate endpoint)
		AllowedHosts: splitAndTrim(getenv("GRIDPAGE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("GRIDPAGE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("GRIDPAGE_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: GRIDPAGE_REDIS_PASSWORD is required when GRIDPAGE_REDIS_PASSWORD_REQUIRED=true")
	}

	cfg.ConfigDir = filepath.Clean(cfg.ConfigDir)

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

// Paths to the individual content files inside ConfigDir.

func (c *Config) SettingsFile() string  { return filepath.Join(c.ConfigDir, "settings.yaml") }
func (c *Config) ServicesFile() string  { return filepath.Join(c.ConfigDir, "services.yaml") }
func (c *Config) BookmarksFile() string { return filepath.Join(c.ConfigDir, "bookmarks.yaml") }
func (c *Config) WidgetsFile() string   { return filepath.Join(c.ConfigDir, "widgets.yaml") }

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
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

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
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
