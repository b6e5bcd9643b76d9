// Package config loads application configuration from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	JWT       JWTConfig       `koanf:"jwt"`
	Stripe    StripeConfig    `koanf:"stripe"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port"`
	MetricsPort       string        `koanf:"metrics_port"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// DatabaseConfig contains document store settings.
type DatabaseConfig struct {
	URI            string        `koanf:"uri"`
	Name           string        `koanf:"name"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// JWTConfig contains token signing settings.
type JWTConfig struct {
	SecretKey     string        `koanf:"secret_key"`
	TokenDuration time.Duration `koanf:"token_duration"`
}

// StripeConfig contains payment gateway settings.
type StripeConfig struct {
	SecretKey string `koanf:"secret_key"`
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// RateLimitConfig bounds the request rate toward the payment gateway.
// A zero RPS disables limiting.
type RateLimitConfig struct {
	PaymentIntentRPS   float64 `koanf:"payment_intent_rps"`
	PaymentIntentBurst int     `koanf:"payment_intent_burst"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              "5000",
			MetricsPort:       "9090",
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			Name:           "resturentDB",
			ConnectTimeout: 10 * time.Second,
		},
		JWT: JWTConfig{
			TokenDuration: time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			PaymentIntentBurst: 5,
		},
	}
}

// legacyEnvKeys maps the environment names the original deployment used to
// their configuration keys.
var legacyEnvKeys = map[string]string{
	"PORT":              "server.port",
	"MONGODB_URI":       "database.uri",
	"DB_NAME":           "database.name",
	"ACCESS_JWT_TOKEN":  "jwt.secret_key",
	"STRIPE_GATEWAY_SK": "stripe.secret_key",
}

// Load reads configuration from the optional YAML file at path (skipped when
// empty) and then from the environment, over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envMapper), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is required (ACCESS_JWT_TOKEN)")
	}
	if cfg.Database.URI == "" {
		return nil, errors.New("database uri is required (MONGODB_URI)")
	}

	return cfg, nil
}

// envMapper recognizes the legacy environment names and BISTRO_-prefixed
// keys (BISTRO_SERVER_PORT -> server.port). Everything else is ignored.
func envMapper(key, value string) (string, interface{}) {
	mapped, ok := legacyEnvKeys[key]
	if !ok {
		rest, found := strings.CutPrefix(key, "BISTRO_")
		if !found {
			return "", nil
		}
		mapped = strings.Replace(strings.ToLower(rest), "_", ".", 1)
	}

	if mapped == "cors.allowed_origins" {
		return mapped, strings.Split(value, ",")
	}
	return mapped, value
}
