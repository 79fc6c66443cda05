package shared

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

type Config struct {
	AppEnv      string `toml:"app_env"`
	LogLevel    string `toml:"log_level"`
	HTTPAddr    string `toml:"http_addr"`
	MetricsAddr string `toml:"metrics_addr"`
	// RequestTimeout bounds each API request; 0 disables it.
	RequestTimeout time.Duration `toml:"-"`
	// MySQLDSN empty keeps bookings and events in memory.
	MySQLDSN string `toml:"mysql_dsn"`
	// RedisAddr empty disables the search cache.
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	RedisPass string `toml:"redis_password"`

	JWTSecret   string        `toml:"jwt_secret"`
	JWTIssuer   string        `toml:"jwt_issuer"`
	JWTAudience string        `toml:"jwt_audience"`
	TokenTTL    time.Duration `toml:"-"`

	PaymentDelay time.Duration `toml:"-"`
	CacheTTL     time.Duration `toml:"-"`
	SessionIdle  time.Duration `toml:"-"`
	PageSize     int           `toml:"page_size"`

	// Client side (travelctl).
	APIBase                string        `toml:"api_base"`
	ClientRPS              int           `toml:"client_rps"`
	LocalStorePath         string        `toml:"local_store"`
	TelemetryFlushInterval time.Duration `toml:"-"`
	TelemetryWorkers       int           `toml:"telemetry_workers"`
}

// durations are written as "30s", "15m" in the file.
type fileConfig struct {
	Config
	RequestTimeout         string `toml:"request_timeout"`
	TokenTTL               string `toml:"token_ttl"`
	PaymentDelay           string `toml:"payment_delay"`
	CacheTTL               string `toml:"cache_ttl"`
	SessionIdle            string `toml:"session_idle"`
	TelemetryFlushInterval string `toml:"telemetry_flush_interval"`
}

func Defaults() Config {
	return Config{
		AppEnv:                 "prod",
		LogLevel:               "info",
		HTTPAddr:               ":8080",
		MetricsAddr:            ":9100",
		RequestTimeout:         15 * time.Second,
		JWTSecret:              "dev-secret-change-me",
		JWTIssuer:              "travel-booking",
		JWTAudience:            "travel-api",
		TokenTTL:               24 * time.Hour,
		PaymentDelay:           2 * time.Second,
		CacheTTL:               900 * time.Second,
		SessionIdle:            30 * time.Minute,
		PageSize:               10,
		APIBase:                "http://localhost:8080/api/v1",
		ClientRPS:              5,
		LocalStorePath:         ".travel/localstore.json",
		TelemetryFlushInterval: 30 * time.Second,
		TelemetryWorkers:       4,
	}
}

// Load builds the config from defaults, the TOML file named by TRAVEL_CONFIG (if any),
// then environment variables, later sources winning.
func Load() (Config, error) {
	c := Defaults()
	if path := os.Getenv("TRAVEL_CONFIG"); path != "" {
		var err error
		if c, err = overlayFile(c, path); err != nil {
			return Config{}, err
		}
	}
	overlayEnv(&c)
	if c.JWTSecret == Defaults().JWTSecret && c.AppEnv == "prod" {
		log.Warn().Msg("JWT_SECRET is the development default")
	}
	return c, nil
}

func overlayFile(c Config, path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	fc := fileConfig{Config: c}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	out := fc.Config
	for _, d := range []struct {
		raw string
		dst *time.Duration
	}{
		{fc.RequestTimeout, &out.RequestTimeout},
		{fc.TokenTTL, &out.TokenTTL},
		{fc.PaymentDelay, &out.PaymentDelay},
		{fc.CacheTTL, &out.CacheTTL},
		{fc.SessionIdle, &out.SessionIdle},
		{fc.TelemetryFlushInterval, &out.TelemetryFlushInterval},
	} {
		if d.raw == "" {
			continue
		}
		v, err := cast.ToDurationE(d.raw)
		if err != nil {
			return c, fmt.Errorf("config %s: duration %q: %w", path, d.raw, err)
		}
		*d.dst = v
	}
	return out, nil
}

func overlayEnv(c *Config) {
	str := func(dst *string, k string) {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
	atoi := func(dst *int, k string) {
		if v := os.Getenv(k); v != "" {
			if n, err := cast.ToIntE(v); err == nil {
				*dst = n
			}
		}
	}
	// Plain integers are seconds, like the other *_SECONDS settings.
	dur := func(dst *time.Duration, k string) {
		v := os.Getenv(k)
		if v == "" {
			return
		}
		if n, err := cast.ToIntE(v); err == nil {
			*dst = time.Duration(n) * time.Second
			return
		}
		if d, err := cast.ToDurationE(v); err == nil {
			*dst = d
		}
	}

	str(&c.AppEnv, "APP_ENV")
	str(&c.LogLevel, "LOG_LEVEL")
	str(&c.HTTPAddr, "HTTP_ADDR")
	str(&c.MetricsAddr, "METRICS_ADDR")
	dur(&c.RequestTimeout, "REQUEST_TIMEOUT")
	str(&c.MySQLDSN, "MYSQL_DSN")
	str(&c.RedisAddr, "REDIS_ADDR")
	atoi(&c.RedisDB, "REDIS_DB")
	str(&c.RedisPass, "REDIS_PASSWORD")
	str(&c.JWTSecret, "JWT_SECRET")
	str(&c.JWTIssuer, "JWT_ISSUER")
	str(&c.JWTAudience, "JWT_AUDIENCE")
	dur(&c.TokenTTL, "TOKEN_TTL_SECONDS")
	dur(&c.PaymentDelay, "PAYMENT_DELAY")
	dur(&c.CacheTTL, "CACHE_TTL_SECONDS")
	dur(&c.SessionIdle, "SESSION_IDLE")
	atoi(&c.PageSize, "PAGE_SIZE")
	str(&c.APIBase, "TRAVEL_API_BASE")
	atoi(&c.ClientRPS, "TRAVEL_API_RPS")
	str(&c.LocalStorePath, "TRAVEL_LOCAL_STORE")
	dur(&c.TelemetryFlushInterval, "TELEMETRY_FLUSH_INTERVAL")
	atoi(&c.TelemetryWorkers, "TELEMETRY_WORKERS")
}
