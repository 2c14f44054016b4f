package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds environment-driven configuration. An optional YAML file named
// by CANDLE_SHOP_CONFIG is read first; environment variables override it.
type Config struct {
	Addr        string `yaml:"addr"`
	DatabaseURL string `yaml:"database_url"`
	JWTSecret   string `yaml:"jwt_secret"`

	Razorpay RazorpayConfig `yaml:"razorpay"`
	Currency string         `yaml:"currency"`

	CORSAllowOrigins string `yaml:"cors_allow_origins"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	KafkaBrokers     string `yaml:"kafka_brokers"`
	OrderEventsTopic string `yaml:"order_events_topic"`

	AdminCacheTTL time.Duration `yaml:"admin_cache_ttl"`
}

// RazorpayConfig carries the payment gateway credentials.
type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	BaseURL   string `yaml:"base_url"`
}

// Default returns a Config with local development defaults.
func Default() Config {
	return Config{
		Addr:             ":8080",
		Currency:         "INR",
		CORSAllowOrigins: "*",
		LogLevel:         "info",
		LogFormat:        "json",
		OrderEventsTopic: "orders",
		AdminCacheTTL:    5 * time.Minute,
		Razorpay: RazorpayConfig{
			BaseURL: "https://api.razorpay.com",
		},
	}
}

// Load reads configuration from the optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CANDLE_SHOP_CONFIG")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Addr, "CANDLE_SHOP_ADDR")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.Razorpay.KeyID, "RAZORPAY_KEY_ID")
	setString(&c.Razorpay.KeySecret, "RAZORPAY_KEY_SECRET")
	setString(&c.Razorpay.BaseURL, "RAZORPAY_BASE_URL")
	setString(&c.Currency, "CURRENCY")
	setString(&c.CORSAllowOrigins, "CORS_ALLOW_ORIGINS")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.KafkaBrokers, "KAFKA_BROKERS")
	setString(&c.OrderEventsTopic, "ORDER_EVENTS_TOPIC")

	if v := strings.TrimSpace(os.Getenv("ADMIN_CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: ADMIN_CACHE_TTL: %w", err)
		}
		c.AdminCacheTTL = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks the settings the HTTP server cannot run without.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		errs = append(errs, errors.New("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required"))
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf("currency %q must be a 3-letter code", c.Currency))
	}
	return errors.Join(errs...)
}
