// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type StorageConfig struct {
	Backend     string `yaml:"backend"` // file | postgres
	CodesFile   string `yaml:"codes_file"`
	LeadsFile   string `yaml:"leads_file"`
	DatabaseURL string `yaml:"database_url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LockConfig struct {
	Backend string        `yaml:"backend"` // memory | redis
	TTL     time.Duration `yaml:"ttl"`     // redis lock expiry
	Redis   RedisConfig   `yaml:"redis"`
}

type MailgunConfig struct {
	APIKey string `yaml:"api_key"`
	Domain string `yaml:"domain"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Sender   string `yaml:"sender"`
}

type NotifierConfig struct {
	Transport string        `yaml:"transport"` // mailgun | smtp | none
	Receiver  string        `yaml:"receiver"`
	Timeout   time.Duration `yaml:"timeout"`
	Mailgun   MailgunConfig `yaml:"mailgun"`
	SMTP      SMTPConfig    `yaml:"smtp"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Lock     LockConfig     `yaml:"lock"`
	Notifier NotifierConfig `yaml:"notifier"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML config file, applies defaults and the
// environment overrides the legacy deployment relied on. The file is
// optional: a missing file means "defaults plus environment".
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only deployment
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(&cfg)

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8001
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	if cfg.Storage.CodesFile == "" {
		cfg.Storage.CodesFile = "codigos.json"
	}
	if cfg.Storage.LeadsFile == "" {
		cfg.Storage.LeadsFile = "leads.json"
	}
	if cfg.Lock.Backend == "" {
		cfg.Lock.Backend = "memory"
	}
	if cfg.Lock.TTL <= 0 {
		cfg.Lock.TTL = 30 * time.Second
	}
	if cfg.Notifier.Transport == "" {
		cfg.Notifier.Transport = "mailgun"
	}
	if cfg.Notifier.Timeout <= 0 {
		cfg.Notifier.Timeout = 10 * time.Second
	}

	// Minimal validation
	if cfg.Storage.Backend != "file" && cfg.Storage.Backend != "postgres" {
		return nil, fmt.Errorf("storage.backend %q is not supported", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == "postgres" && cfg.Storage.DatabaseURL == "" {
		return nil, errors.New("storage.database_url is required with the postgres backend")
	}
	if cfg.Lock.Backend != "memory" && cfg.Lock.Backend != "redis" {
		return nil, fmt.Errorf("lock.backend %q is not supported", cfg.Lock.Backend)
	}
	if cfg.Lock.Backend == "redis" && cfg.Lock.Redis.URL == "" {
		return nil, errors.New("lock.redis.url is required with the redis backend")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// applyEnvOverrides keeps compatibility with the variable names the legacy
// deployment used (.env driven).
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("DB_FILE"); v != "" {
		cfg.Storage.CodesFile = v
	}
	if v := os.Getenv("LEADS_FILE"); v != "" {
		cfg.Storage.LeadsFile = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DatabaseURL = v
	}
	if v := os.Getenv("MAILGUN_API_KEY"); v != "" {
		cfg.Notifier.Mailgun.APIKey = v
	}
	if v := os.Getenv("MAILGUN_DOMAIN"); v != "" {
		cfg.Notifier.Mailgun.Domain = v
	}
	if v := os.Getenv("EMAIL_RECEIVER"); v != "" {
		cfg.Notifier.Receiver = v
	}
}
