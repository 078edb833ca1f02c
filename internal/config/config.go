package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the dashboard server.
type Config struct {
	AppName               string
	AppEnv                string
	AppPort               string
	LogLevel              string
	UpstreamBaseURL       string
	UpstreamTimeout       time.Duration
	UpstreamCookie        string
	RequireUpstreamCookie bool
	LoginURL              string
	RedisURL              string
	ChatTranscriptTTL     time.Duration
	ChatRateLimit         int
	ChatRateWindow        time.Duration
	SessionCookie         string
	MetricsSentinel       string
	TracingEnabled        bool
	TracingServiceName    string
	CORSAllowedOrigins    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HOIDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "HOI Dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("upstream.base_url", "http://127.0.0.1:5000")
	v.SetDefault("upstream.timeout", "0s")
	v.SetDefault("upstream.cookie", "session")
	v.SetDefault("upstream.require_cookie", false)
	v.SetDefault("login.url", "/login")
	v.SetDefault("chat.transcript_ttl", "12h")
	v.SetDefault("chat.rate_limit", 20)
	v.SetDefault("chat.rate_window", "1m")
	v.SetDefault("session.cookie", "hoidash_session")
	v.SetDefault("metrics.sentinel", "N/A")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "hoi-dashboard")
	v.SetDefault("cors.allowed_origins", "*")

	upstreamTimeout, err := parseDuration(v, "upstream.timeout", "0s")
	if err != nil {
		return Config{}, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	transcriptTTL, err := parseDuration(v, "chat.transcript_ttl", "12h")
	if err != nil {
		return Config{}, fmt.Errorf("invalid chat transcript ttl: %w", err)
	}

	rateWindow, err := parseDuration(v, "chat.rate_window", "1m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid chat rate window: %w", err)
	}

	cfg := Config{
		AppName:               v.GetString("app.name"),
		AppEnv:                v.GetString("app.env"),
		AppPort:               v.GetString("app.port"),
		LogLevel:              strings.ToLower(v.GetString("log.level")),
		UpstreamBaseURL:       strings.TrimRight(strings.TrimSpace(v.GetString("upstream.base_url")), "/"),
		UpstreamTimeout:       upstreamTimeout,
		UpstreamCookie:        v.GetString("upstream.cookie"),
		RequireUpstreamCookie: v.GetBool("upstream.require_cookie"),
		LoginURL:              v.GetString("login.url"),
		RedisURL:              v.GetString("redis.url"),
		ChatTranscriptTTL:     transcriptTTL,
		ChatRateLimit:         v.GetInt("chat.rate_limit"),
		ChatRateWindow:        rateWindow,
		SessionCookie:         v.GetString("session.cookie"),
		MetricsSentinel:       v.GetString("metrics.sentinel"),
		TracingEnabled:        v.GetBool("tracing.enabled"),
		TracingServiceName:    v.GetString("tracing.service_name"),
		CORSAllowedOrigins:    v.GetString("cors.allowed_origins"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the values Load cannot default on its own.
func (c Config) Validate() error {
	if c.UpstreamBaseURL == "" {
		return fmt.Errorf("upstream base url must be provided")
	}

	parsed, err := url.Parse(c.UpstreamBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("upstream base url %q is not absolute", c.UpstreamBaseURL)
	}

	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("upstream timeout must not be negative")
	}

	if strings.TrimSpace(c.MetricsSentinel) == "" || c.MetricsSentinel == "0" {
		return fmt.Errorf("metrics sentinel must be a non-empty value distinct from zero")
	}

	if c.SessionCookie == "" {
		return fmt.Errorf("session cookie name must be provided")
	}

	return nil
}

func parseDuration(v *viper.Viper, key, fallback string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		raw = fallback
	}
	return time.ParseDuration(raw)
}
