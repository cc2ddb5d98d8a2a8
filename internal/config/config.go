package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// OAuth client
	ClientID     string   // OAuth client id issued by the platform
	ClientSecret string   // OAuth client secret
	CallbackURL  string   // base callback URL (ex: https://app.domain.ext/auth/callback)
	Scopes       []string // requested OAuth scopes

	// Endpoint resolution
	EndpointsFile string            // optional YAML file replacing built-in candidate lists
	Overrides     map[string]string // per-operation URL overrides (operation -> URL)
	ProbeTimeout  time.Duration     // per-candidate reachability probe timeout (default: 3s)

	// Upstream fetching
	FetchTimeout    time.Duration // per-call timeout for data-plane requests (default: 5s)
	DefaultPageSize int           // page size when the frontend does not ask for one
	MaxPageSize     int           // hard cap on requested page size
	SessionTTL      time.Duration // browser session lifetime
	CacheTTL        time.Duration // aggregated response cache TTL
	CookieSecure    bool          // set Secure on the session cookie (disable for local dev)

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

	AllowedOrigins []string // browser origins allowed by CORS (the SPA)
	AllowedCIDRS   []string // optional, restrict ops endpoints to specific IPs
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Rate limiting
	RateBurst         int // per-IP burst size
	RateRefillPerMin  int // per-IP refill rate
	RateLimitDisabled bool
}

// operationURLEnv maps each logical operation to the env var that, when
// set, overrides its resolution entirely (no probing).
var operationURLEnv = map[string]string{
	"authorize":      "PLAYGATE_AUTHORIZE_URL",
	"token":          "PLAYGATE_TOKEN_URL",
	"userinfo":       "PLAYGATE_USERINFO_URL",
	"games-api":      "PLAYGATE_GAMES_API_URL",
	"users-api":      "PLAYGATE_USERS_API_URL",
	"thumbnails-api": "PLAYGATE_THUMBNAILS_API_URL",
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PLAYGATE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PLAYGATE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PLAYGATE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PLAYGATE_PRETTY_LOG", true),

		// OAuth client
		ClientID:     requireEnv("PLAYGATE_CLIENT_ID"),
		ClientSecret: requireEnv("PLAYGATE_CLIENT_SECRET"),
		CallbackURL:  requireEnv("PLAYGATE_CALLBACK_URL"),
		Scopes:       splitAndTrim(getenv("PLAYGATE_SCOPES", "openid,profile")),

		// Endpoint resolution
		EndpointsFile: getenv("PLAYGATE_ENDPOINTS_FILE", ""),
		Overrides:     loadOverrides(),
		ProbeTimeout:  mustDuration("PLAYGATE_PROBE_TIMEOUT", 3*time.Second),

		// Upstream fetching
		FetchTimeout:    mustDuration("PLAYGATE_FETCH_TIMEOUT", 5*time.Second),
		DefaultPageSize: getenvInt("PLAYGATE_DEFAULT_PAGE_SIZE", 30),
		MaxPageSize:     getenvInt("PLAYGATE_MAX_PAGE_SIZE", 100),
		SessionTTL:      mustDuration("PLAYGATE_SESSION_TTL", 24*time.Hour),
		CacheTTL:        mustDuration("PLAYGATE_CACHE_TTL", 30*time.Second),
		CookieSecure:    mustBool("PLAYGATE_COOKIE_SECURE", true),

		// Redis settings
		RedisAddr:             requireEnv("PLAYGATE_REDIS_ADDR"),
		RedisUser:             getenv("PLAYGATE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("PLAYGATE_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("PLAYGATE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("PLAYGATE_REDIS_DB", 0),
		RedisDT:               mustDuration("PLAYGATE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("PLAYGATE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("PLAYGATE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("PLAYGATE_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("PLAYGATE_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("PLAYGATE_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("PLAYGATE_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("PLAYGATE_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("PLAYGATE_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("PLAYGATE_ALLOWED_ORIGINS", "")),
		AllowedCIDRS:   parseAllowedIPs(getenv("PLAYGATE_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("PLAYGATE_TRUST_PROXY", true),

		// Rate limiting
		RateBurst:         getenvInt("PLAYGATE_RATE_BURST", 30),
		RateRefillPerMin:  getenvInt("PLAYGATE_RATE_REFILL_PER_MIN", 60),
		RateLimitDisabled: mustBool("PLAYGATE_RATE_LIMIT_DISABLED", false),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: PLAYGATE_REDIS_PASSWORD is required when PLAYGATE_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.ClientSecret = "***REDACTED***"
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// loadOverrides collects the per-operation URL override env vars that are
// actually set.
func loadOverrides() map[string]string {
	overrides := make(map[string]string, len(operationURLEnv))
	for op, key := range operationURLEnv {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			overrides[op] = v
		}
	}
	return overrides
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
