package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"120s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
		RateLimit       struct {
			Enabled bool    `yaml:"enabled" default:"true"`
			RPS     float64 `yaml:"rps" default:"10"`
			Burst   int     `yaml:"burst" default:"20"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		SlowThreshold time.Duration `yaml:"slow_threshold" default:"5s"`
	} `yaml:"metrics"`
	BCB struct {
		BaseURL     string        `yaml:"base_url" default:"https://api.bcb.gov.br/dados/serie/bcdata.sgs"`
		Timeout     time.Duration `yaml:"timeout" default:"30s"`
		MaxAttempts int           `yaml:"max_attempts" default:"3"`
		RetryDelay  time.Duration `yaml:"retry_delay" default:"1s"`
		UserAgent   string        `yaml:"user_agent" default:"bcb-series/1.1.0"`
	} `yaml:"bcb"`
	Cache struct {
		Enabled bool          `yaml:"enabled" default:"false"`
		Backend string        `yaml:"backend" default:"memory"`
		TTL     time.Duration `yaml:"ttl" default:"60s"`
		Size    int           `yaml:"size" default:"512"`
		Redis   struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Logger struct {
		Level      string `yaml:"level" default:"info"`
		Format     string `yaml:"format" default:"json"`
		Output     string `yaml:"output" default:"stdout"`
		MaxSizeMB  int    `yaml:"max_size_mb" default:"100"`
		MaxBackups int    `yaml:"max_backups" default:"5"`
		MaxAgeDays int    `yaml:"max_age_days" default:"28"`
	} `yaml:"logger"`
}

// Default returns a configuration populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file. Missing keys keep their
// defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("BCB_BASE_URL"); v != "" {
		c.BCB.BaseURL = v
	}
	if v := os.Getenv("BCB_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("BCB_TIMEOUT: %w", err)
		}
		c.BCB.Timeout = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.BCB.BaseURL == "" {
		return fmt.Errorf("bcb.base_url is required")
	}
	if c.BCB.Timeout <= 0 {
		return fmt.Errorf("bcb.timeout must be positive, got %s", c.BCB.Timeout)
	}
	if c.BCB.MaxAttempts < 1 {
		return fmt.Errorf("bcb.max_attempts must be >= 1, got %d", c.BCB.MaxAttempts)
	}
	if c.BCB.RetryDelay < 0 {
		return fmt.Errorf("bcb.retry_delay cannot be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Cache.Enabled {
		if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
			return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled")
		}
	}
	return nil
}
