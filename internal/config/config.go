package config // package config loads gateway configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Strings for addresses and names,
// durations for anything time-based. The upstream base URL is the only
// value without a usable default.
type Config struct {
	Env  string // application environment (dev/test/prod)
	Port string // HTTP port to listen on

	UpstreamBaseURL string        // base URL of the ticketing REST API
	UpstreamTimeout time.Duration // per-request timeout against the upstream

	SessionCookie string        // name of the browser session cookie
	SessionTTL    time.Duration // idle lifetime of a session
	FormTokenTTL  time.Duration // lifetime of one-shot form tokens

	QueuePollBase time.Duration // first queue-page refresh interval
	QueuePollCap  time.Duration // backoff ceiling for queue-page refreshes

	RateLimit RateLimit // per-session POST throttling
}

// RateLimit configures the fixed-window limiter on mutating routes.
type RateLimit struct {
	Enabled bool
	Limit   int           // requests allowed per window
	Window  time.Duration // window length
}

// Load reads configuration from the environment. A .env file is honored when
// present for local runs. Missing required values abort startup.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            getenv("APP_PORT", "8080"),
		UpstreamBaseURL: must("API_BASE_URL"),
		UpstreamTimeout: getdur("API_TIMEOUT", "10s"),
		SessionCookie:   getenv("SESSION_COOKIE", "mt_session"),
		SessionTTL:      getdur("SESSION_TTL", "12h"),
		FormTokenTTL:    getdur("FORM_TOKEN_TTL", "15m"),
		QueuePollBase:   getdur("QUEUE_POLL_BASE", "1s"),
		QueuePollCap:    getdur("QUEUE_POLL_CAP", "5s"),
		RateLimit: RateLimit{
			Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
			Limit:   getint("RATE_LIMIT_MAX", 10),
			Window:  getdur("RATE_LIMIT_WINDOW", "10s"),
		},
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getdur(key, def string) time.Duration {
	s := getenv(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, s)
	}
	return d
}
