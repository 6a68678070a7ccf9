package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		JWTSecret      string   `yaml:"jwtSecret"`
		TokenTTL       string   `yaml:"tokenTtl"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL           string `yaml:"ttl"`
		FeedbackDelay string `yaml:"feedbackDelay"`
	} `yaml:"quiz"`
	Bank struct {
		Dir string `yaml:"dir"`
	} `yaml:"bank"`
	Profile struct {
		Path string `yaml:"path"`
	} `yaml:"profile"`
	Events struct {
		AMQPURL  string `yaml:"amqpUrl"`
		Exchange string `yaml:"exchange"`
	} `yaml:"events"`
}

// Load reads YAML config from path and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields an env-only config.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Config{}
		cfg.applyEnv()
		return cfg, nil
	}
	return cfg, err
}

func (c *Config) applyEnv() {
	override(&c.Server.JWTSecret, "JWT_SECRET")
	override(&c.Postgres.URL, "DATABASE_URL")
	override(&c.Redis.Addr, "REDIS_ADDR")
	override(&c.Redis.Password, "REDIS_PASSWORD")
	override(&c.Bank.Dir, "QUIZ_BANK_DIR")
	override(&c.Profile.Path, "SPACE_STEM_PROFILE")
	override(&c.Events.AMQPURL, "AMQP_URL")
	if c.Events.Exchange == "" {
		c.Events.Exchange = "quiz.events"
	}
}

func override(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
