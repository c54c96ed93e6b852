// Package config loads the YAML runtime configuration: which venues to
// scrape, which storage backend to write to and how announcements go out.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VenueConfig describes one venue to scrape.
type VenueConfig struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	BaseURL      string `yaml:"base_url"`
	Timezone     string `yaml:"timezone"`
	Adapter      string `yaml:"adapter"`
	DefaultImage string `yaml:"default_image"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is one of "postgres", "rest" or "memory".
	Backend string `yaml:"backend"`

	// DSN is the Postgres connection string. Read from the STORE_DSN
	// environment variable when empty, so secrets stay out of the file.
	DSN string `yaml:"dsn"`

	// SimpleProtocol must be set when connecting through PgBouncer.
	SimpleProtocol bool `yaml:"simple_protocol"`

	// BaseURL and Token configure the REST backend. The token falls back
	// to the STORE_API_TOKEN environment variable.
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// NotifierConfig controls announcement of newly inserted events.
type NotifierConfig struct {
	Enabled bool `yaml:"enabled"`
	DryRun  bool `yaml:"dry_run"`
}

// Config is the full runtime configuration.
type Config struct {
	Venues   []VenueConfig  `yaml:"venues"`
	Store    StoreConfig    `yaml:"store"`
	Notifier NotifierConfig `yaml:"notifier"`
	LockPath string         `yaml:"lock_path"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
	if c.Store.DSN == "" {
		c.Store.DSN = os.Getenv("STORE_DSN")
	}
	if c.Store.Token == "" {
		c.Store.Token = os.Getenv("STORE_API_TOKEN")
	}
	if c.LockPath == "" {
		c.LockPath = os.TempDir() + "/gigwire.lock"
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if len(c.Venues) == 0 {
		return fmt.Errorf("config: no venues defined")
	}
	seen := make(map[string]bool, len(c.Venues))
	for i, v := range c.Venues {
		if v.ID == "" {
			return fmt.Errorf("config: venue %d has no id", i)
		}
		if seen[v.ID] {
			return fmt.Errorf("config: duplicate venue id %q", v.ID)
		}
		seen[v.ID] = true
		if v.BaseURL == "" {
			return fmt.Errorf("config: venue %q has no base_url", v.ID)
		}
		if v.Timezone == "" {
			return fmt.Errorf("config: venue %q has no timezone", v.ID)
		}
		if v.Adapter == "" {
			return fmt.Errorf("config: venue %q has no adapter", v.ID)
		}
	}

	switch c.Store.Backend {
	case "memory":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("config: postgres backend needs a dsn (or STORE_DSN)")
		}
	case "rest":
		if c.Store.BaseURL == "" {
			return fmt.Errorf("config: rest backend needs a base_url")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	return nil
}
