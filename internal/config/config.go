package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"pricebridge/internal/blp"
)

// Config is the process configuration. Provider endpoint settings become an
// explicit SessionOptions value handed to the bridge; nothing here is global
// mutable state.
type Config struct {
	Port           string `mapstructure:"PORT"`
	ProviderHost   string `mapstructure:"BLPAPI_SERVER_HOST"`
	ProviderPort   int    `mapstructure:"BLPAPI_SERVER_PORT"`
	PollTimeoutSec int    `mapstructure:"POLL_TIMEOUT_SEC"`
	DialTimeoutSec int    `mapstructure:"DIAL_TIMEOUT_SEC"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from an optional .env file and the environment.
func Load() (Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "5001")
	viper.SetDefault("BLPAPI_SERVER_HOST", "localhost")
	viper.SetDefault("BLPAPI_SERVER_PORT", 8194)
	viper.SetDefault("POLL_TIMEOUT_SEC", 5)
	viper.SetDefault("DIAL_TIMEOUT_SEC", 10)
	viper.SetDefault("LOG_LEVEL", "info")

	// .env is optional; env vars alone are fine
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.ProviderPort <= 0 || cfg.ProviderPort > 65535 {
		return cfg, fmt.Errorf("invalid BLPAPI_SERVER_PORT: %d", cfg.ProviderPort)
	}
	if cfg.PollTimeoutSec <= 0 {
		return cfg, fmt.Errorf("invalid POLL_TIMEOUT_SEC: %d", cfg.PollTimeoutSec)
	}
	return cfg, nil
}

// SessionOptions returns the provider endpoint for one session.
func (c Config) SessionOptions() blp.SessionOptions {
	return blp.SessionOptions{
		Host:        c.ProviderHost,
		Port:        c.ProviderPort,
		DialTimeout: time.Duration(c.DialTimeoutSec) * time.Second,
	}
}

// PollTimeout is the per-poll event bound used by the bridge.
func (c Config) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutSec) * time.Second
}
