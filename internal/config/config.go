// Package config loads exporter settings from an optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	PacerStagger = "stagger"
	PacerBucket  = "bucket"
)

type Config struct {
	Steam SteamConfig `yaml:"steam"`
	HTTP  HTTPConfig  `yaml:"http"`
	Redis RedisConfig `yaml:"redis"`
	Log   LogConfig   `yaml:"log"`
}

type SteamConfig struct {
	Key            string        `yaml:"key"             env:"STEAM_KEY"`
	SteamID        string        `yaml:"steam_id"        env:"STEAM_ID"`
	APIOrigin      string        `yaml:"api_origin"      env:"STEAM_API_ORIGIN"      env-default:"https://api.steampowered.com"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"STEAM_REQUEST_TIMEOUT" env-default:"30s"`
	Lang           string        `yaml:"lang"            env:"STEAM_LANG"            env-default:"en"`
	// StaggerStep is the start offset between consecutive per-game fetches.
	StaggerStep time.Duration `yaml:"stagger_step" env:"STAGGER_STEP" env-default:"125ms"`
	Pacer       string        `yaml:"pacer"        env:"PACER"        env-default:"stagger"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env:"PORT" env-default:"8000"`
}

// RedisConfig is only used in serve mode. An empty Addr disables the run lock.
type RedisConfig struct {
	Addr     string        `yaml:"addr"     env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	LockTTL  time.Duration `yaml:"lock_ttl" env:"RUN_LOCK_TTL"   env-default:"5m"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from, in order of priority: the explicit path,
// the CONFIG_PATH environment variable, or the environment alone.
// Environment variables always override values read from a file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Steam.Key == "" {
		return fmt.Errorf("steam.key is required - set STEAM_KEY environment variable")
	}
	if c.Steam.APIOrigin == "" {
		return fmt.Errorf("steam.api_origin must not be empty")
	}
	if c.Steam.StaggerStep < 0 {
		return fmt.Errorf("steam.stagger_step must be >= 0")
	}
	switch c.Steam.Pacer {
	case PacerStagger, PacerBucket:
	default:
		return fmt.Errorf("steam.pacer must be %q or %q, got %q", PacerStagger, PacerBucket, c.Steam.Pacer)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.Redis.Addr != "" && c.Redis.LockTTL <= 0 {
		return fmt.Errorf("redis.lock_ttl must be > 0 when redis.addr is set")
	}
	return nil
}
