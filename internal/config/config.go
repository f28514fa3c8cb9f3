package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ErrNotInitialized is returned when a command needs mocksmith.config.json
// and none exists.
var ErrNotInitialized = errors.New("project not initialized, run 'mocksmith init' first")

const ConfigFileName = "mocksmith.config.json"

type Config struct {
	Version     string   `json:"version" mapstructure:"version"`
	ConfigsPath string   `json:"configs_path" mapstructure:"configs_path"`
	Database    Database `json:"database" mapstructure:"database"`
	Generate    Generate `json:"generate" mapstructure:"generate"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Generate holds the run-wide generation defaults; per-table config files
// override them table by table.
type Generate struct {
	Rows       int   `json:"rows" mapstructure:"rows"`
	BatchSize  int   `json:"batch_size" mapstructure:"batch_size"`
	Seed       int64 `json:"seed,omitempty" mapstructure:"seed"`
	PoolSize   int   `json:"pool_size" mapstructure:"pool_size"`
	MinRelated int   `json:"min_related" mapstructure:"min_related"`
	MaxRelated int   `json:"max_related" mapstructure:"max_related"`
}

func DefaultConfig() *Config {
	return &Config{
		Version:     "1",
		ConfigsPath: "table_configs",
		Database: Database{
			Provider: "postgresql",
			URLEnv:   "DATABASE_URL",
		},
		Generate: Generate{
			Rows:       100,
			BatchSize:  250,
			PoolSize:   10,
			MinRelated: 1,
			MaxRelated: 5,
		},
	}
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Generate.Rows <= 0 {
		cfg.Generate.Rows = 100
	}
	if cfg.Generate.BatchSize <= 0 {
		cfg.Generate.BatchSize = 250
	}
	if cfg.ConfigsPath == "" {
		cfg.ConfigsPath = "table_configs"
	}

	return cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Generate.MinRelated > c.Generate.MaxRelated {
		return fmt.Errorf("min_related (%d) cannot exceed max_related (%d)", c.Generate.MinRelated, c.Generate.MaxRelated)
	}

	if c.ConfigsPath == "" {
		return fmt.Errorf("configs_path cannot be empty")
	}

	return nil
}

// IsInitialized reports whether a config file exists in the working directory.
func IsInitialized() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

// InitializeProject writes the default config file and creates the table
// config directory. It fails if the project is already initialized.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("project already initialized: %s exists", ConfigFileName)
	}

	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(ConfigFileName, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	if err := os.MkdirAll(cfg.ConfigsPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", cfg.ConfigsPath, err)
	}

	return nil
}
