package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "chargeledger/libs/config"
)

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Port string `yaml:"port" env:"HTTP_PORT"`
}

// DatabaseConfig holds Postgres settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

// RedisConfig holds the optional active-session cache settings. An empty
// Addr disables the cache.
type RedisConfig struct {
	Addr             string `yaml:"addr" env:"REDIS_ADDR"`
	Password         string `yaml:"password" env:"REDIS_PASSWORD"`
	ActiveTTLMinutes int    `yaml:"activeTtlMinutes" env:"REDIS_ACTIVE_TTL_MINUTES"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret         string `yaml:"secret" env:"JWT_SECRET"`
	ExpiresInHours int    `yaml:"expiresInHours" env:"JWT_EXPIRES_HOURS"`
}

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{Port: "8080"},
		JWT:  JWTConfig{ExpiresInHours: 24},
	}

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.JWT.ExpiresInHours <= 0 {
		cfg.JWT.ExpiresInHours = 24
	}

	return cfg, nil
}

// HTTPAddress ensures we always return a host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts the configured expiry to a duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.JWT.ExpiresInHours) * time.Hour
}

// ActiveSessionTTL bounds how long cached active sessions live without a
// completing write.
func (c *Config) ActiveSessionTTL() time.Duration {
	if c.Redis.ActiveTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.Redis.ActiveTTLMinutes) * time.Minute
}
