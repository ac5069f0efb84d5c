package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/saverbot/core/config"
	"github.com/m3rciful/saverbot/core/database"
)

// Config is the full application configuration: the shared bot core plus
// the database block.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database database.Config `yaml:"database"`
}

// CoreConfig returns the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads YAML configuration from path, applies environment overrides,
// and validates the result. The bot token is never read from source code;
// it comes from the config file or the BOT_TOKEN environment variable.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := coreconfig.ProcessEnv(&cfg.Config); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to process database env: %w", err)
	}

	applyDatabaseDefaults(&cfg.Database)

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := validateDatabase(&cfg.Database); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDatabaseDefaults(db *database.Config) {
	if db.Port == "" {
		db.Port = "5432"
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	if db.MaxConnections <= 0 {
		db.MaxConnections = 4
	}
}

func validateDatabase(db *database.Config) error {
	if db.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if db.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if db.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	return nil
}
