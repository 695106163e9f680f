package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process-wide settings. It is built once at startup and
// handed to the components that need it.
type Config struct {
	BackendAPIURL   string        `mapstructure:"BACKEND_API_URL"`
	SalonID         string        `mapstructure:"SALON_ID"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`

	Port           string `mapstructure:"PORT"`
	RunLocal       bool   `mapstructure:"RUN_LOCAL"`
	Env            string `mapstructure:"ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// AWS side channels, both off when empty.
	AWSRegion             string `mapstructure:"AWS_REGION"`
	MetricsNamespace      string `mapstructure:"METRICS_NAMESPACE"`
	BookingEventsQueueURL string `mapstructure:"BOOKING_EVENTS_QUEUE_URL"`
}

var defaults = map[string]interface{}{
	"BACKEND_API_URL":          "",
	"SALON_ID":                 "",
	"UPSTREAM_TIMEOUT":         "10s",
	"PORT":                     "8080",
	"RUN_LOCAL":                false,
	"ENV":                      "development",
	"LOG_LEVEL":                "info",
	"ALLOWED_ORIGINS":          "",
	"AWS_REGION":               "us-east-1",
	"METRICS_NAMESPACE":        "",
	"BOOKING_EVENTS_QUEUE_URL": "",
}

// Load reads a local .env file when present, then the environment.
func Load() (*Config, error) {
	// only effective locally; deployed functions get real env vars
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper resolves the config from the given viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BackendAPIURL = strings.TrimRight(strings.TrimSpace(cfg.BackendAPIURL), "/")
	cfg.SalonID = strings.TrimSpace(cfg.SalonID)
	if cfg.UpstreamTimeout < 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must not be negative, got %s", cfg.UpstreamTimeout)
	}

	return &cfg, nil
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Origins splits ALLOWED_ORIGINS into a clean list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Warnings lists settings that leave the booking endpoint unusable. They do
// not stop startup; each request reports the problem instead.
func (c *Config) Warnings() []string {
	var w []string
	if c.BackendAPIURL == "" {
		w = append(w, "BACKEND_API_URL is not set; bookings will fail with a configuration error")
	}
	if c.SalonID == "" {
		w = append(w, "SALON_ID is not set; bookings will fail with a configuration error")
	}
	return w
}
