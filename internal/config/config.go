// Package config loads runtime settings from configs/config.yml, WIKI_*
// environment variables and built-in defaults, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP    HTTPConfig
	DB      DBConfig
	Auth    AuthConfig
	Session SessionConfig
	Log     LogConfig
}

type HTTPConfig struct {
	Port           string
	ListInterval   time.Duration // default push interval of /ws/pages
	ShutdownPeriod time.Duration
}

type DBConfig struct {
	Path string
}

type AuthConfig struct {
	Hash       string
	SigningKey string
	TokenTTL   time.Duration
}

type SessionConfig struct {
	IdleTTL time.Duration
}

type LogConfig struct {
	Level string
}

const envPrefix = "WIKI"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("http.list_interval", "5s")
	v.SetDefault("http.shutdown_period", "10s")
	v.SetDefault("db.path", "wiki.db")
	v.SetDefault("auth.hash", "sha256")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("session.idle_ttl", "2h")
	v.SetDefault("log.level", "info")
}

// Load reads configuration. With an empty path it looks for config.yml in
// ./configs and tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:           v.GetString("port"),
			ListInterval:   v.GetDuration("http.list_interval"),
			ShutdownPeriod: v.GetDuration("http.shutdown_period"),
		},
		DB: DBConfig{Path: v.GetString("db.path")},
		Auth: AuthConfig{
			Hash:       v.GetString("auth.hash"),
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
		},
		Session: SessionConfig{IdleTTL: v.GetDuration("session.idle_ttl")},
		Log:     LogConfig{Level: v.GetString("log.level")},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return errors.New("db.path must not be empty")
	}
	if c.Auth.SigningKey == "" {
		return errors.New("auth.signing_key must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}
