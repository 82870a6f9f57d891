package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Groq     GroqConfig     `mapstructure:"groq"`
	Market   MarketConfig   `mapstructure:"market"`
}

type ServerConfig struct {
	Port       string `mapstructure:"port"`
	CORSOrigin string `mapstructure:"cors_origin"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type GroqConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// MarketConfig holds API keys for the stock price providers. Any key may be
// empty; an unconfigured provider is skipped in the fallback chain.
type MarketConfig struct {
	TwelveDataKey   string `mapstructure:"twelve_data_key"`
	AlphaVantageKey string `mapstructure:"alpha_vantage_key"`
	FMPKey          string `mapstructure:"fmp_key"`
}

// Load reads config.yaml from the working directory if present and applies
// FINSIGHT_* environment overrides (e.g. FINSIGHT_DATABASE_DSN).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("FINSIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so every key must be
	// bound explicitly or env-only values never reach the struct.
	for _, key := range []string{
		"server.port",
		"server.cors_origin",
		"database.dsn",
		"auth.jwt_secret",
		"groq.api_key",
		"groq.base_url",
		"groq.model",
		"market.twelve_data_key",
		"market.alpha_vantage_key",
		"market.fmp_key",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.cors_origin", "*")
	viper.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("groq.model", "llama3-70b-8192")

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; env-only deployments are fine.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("database.dsn is not set (FINSIGHT_DATABASE_DSN)")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is not set (FINSIGHT_AUTH_JWT_SECRET)")
	}

	return &cfg, nil
}
