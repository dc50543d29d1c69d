package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	HMACSecret   string        `yaml:"hmac_secret"`
	AdminAPIKey  string        `yaml:"admin_api_key"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	SessionBase  string        `yaml:"session_base_url"` // prefix for magic-link session URLs
	CookieDomain string        `yaml:"cookie_domain"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

type StorageConfig struct {
	Bucket        string        `yaml:"bucket"`
	UploadBaseURL string        `yaml:"upload_base_url"`
	PublicBaseURL string        `yaml:"public_base_url"`
	SigningSecret string        `yaml:"signing_secret"`
	UploadTTL     time.Duration `yaml:"upload_ttl"`
}

type RateLimitConfig struct {
	ReportLimit  int           `yaml:"report_limit"`
	ReportWindow time.Duration `yaml:"report_window"`
	ClaimLimit   int           `yaml:"claim_limit"`
	ClaimWindow  time.Duration `yaml:"claim_window"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 15 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 24 * time.Hour
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "listing-images"
	}
	if cfg.Storage.UploadTTL <= 0 {
		cfg.Storage.UploadTTL = 10 * time.Minute
	}
	if cfg.RateLimit.ReportLimit <= 0 {
		cfg.RateLimit.ReportLimit = 5
	}
	if cfg.RateLimit.ReportWindow <= 0 {
		cfg.RateLimit.ReportWindow = time.Minute
	}
	if cfg.RateLimit.ClaimLimit <= 0 {
		cfg.RateLimit.ClaimLimit = 10
	}
	if cfg.RateLimit.ClaimWindow <= 0 {
		cfg.RateLimit.ClaimWindow = time.Minute
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Auth.HMACSecret == "" {
		return nil, errors.New("auth.hmac_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
