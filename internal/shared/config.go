package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	GraphQLURL  string
	SessionFile string
	HTTPTimeout time.Duration
	OutputPath  string
	Sentinel    string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	Session     Session
}

// Load reads an optional .env, then the environment. The session comes from
// BOOKING_SESSION_FILE (or the built-in default) with cookie and csrf token
// overridable on their own.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be parsed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		GraphQLURL:  env("BOOKING_GRAPHQL_URL", "https://www.booking.com/dml/graphql"),
		SessionFile: env("BOOKING_SESSION_FILE", ""),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		OutputPath:  env("LISTINGS_OUTPUT", "listings.csv"),
		Sentinel:    envRaw("LISTINGS_SENTINEL", "N/A"),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}

	s, err := LoadSession(c.SessionFile)
	if err != nil {
		log.Warn().Err(err).Str("file", c.SessionFile).Msg("session file unusable, falling back to built-in session")
		s = DefaultSession()
	}
	c.Session = s.WithOverrides(os.Getenv("BOOKING_COOKIE"), os.Getenv("BOOKING_CSRF_TOKEN"))
	if c.Session.Cookie == "" {
		log.Warn().Msg("booking session cookie is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envRaw is like env but keeps an explicitly empty value.
func envRaw(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}
