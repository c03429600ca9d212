// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"agent-ledger/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort     string        `yaml:"server_port"`
	LogLevel       string        `yaml:"log_level"`
	StrictPubkeys  bool          `yaml:"strict_pubkeys"`
	RunMigrations  bool          `yaml:"run_migrations"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	DB             db.Config     `yaml:"database"`
}

// Default returns the configuration used for local development.
func Default() *AppConfig {
	return &AppConfig{
		ServerPort:     "5500",
		LogLevel:       "info",
		RunMigrations:  true,
		RequestTimeout: 30 * time.Second,
		DB: db.Config{
			Host:         "localhost",
			Port:         5432,
			User:         "user",
			Password:     "password",
			DBName:       "ledgerdb",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 10,
		},
	}
}

// LoadConfig builds the configuration from defaults, then the optional YAML
// file at path, then environment variables. Later sources win.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.DB.Host, "DB_HOST")
	setString(&cfg.DB.User, "DB_USER")
	setString(&cfg.DB.Password, "DB_PASSWORD")
	setString(&cfg.DB.DBName, "DB_NAME")
	setString(&cfg.DB.SSLMode, "DB_SSLMODE")

	if err := setInt(&cfg.DB.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.DB.MaxOpenConns, "DB_MAX_OPEN_CONNS"); err != nil {
		return err
	}
	if err := setInt(&cfg.DB.MaxIdleConns, "DB_MAX_IDLE_CONNS"); err != nil {
		return err
	}
	if err := setBool(&cfg.StrictPubkeys, "STRICT_PUBKEYS"); err != nil {
		return err
	}
	if err := setBool(&cfg.RunMigrations, "RUN_MIGRATIONS"); err != nil {
		return err
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// Validate checks the values LoadConfig cannot default.
func (c *AppConfig) Validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %q", c.ServerPort)
	}
	if c.DB.Port < 1 || c.DB.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535, got %d", c.DB.Port)
	}
	if c.DB.Host == "" || c.DB.DBName == "" {
		return fmt.Errorf("database host and name are required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}
