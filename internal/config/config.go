// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Alerts        AlertsConfig        `yaml:"alerts"`
	Import        ImportConfig        `yaml:"import"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	MaxUploadSize int64         `yaml:"max_upload_size"` // bytes, spreadsheet uploads
}

// Addr returns host:port.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig defines the equipment store connection.
type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // postgres, mysql, memory
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Name        string `yaml:"name"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	SSLMode     string `yaml:"sslmode"` // postgres only
	PoolSize    int    `yaml:"pool_size"`
	AutoMigrate *bool  `yaml:"auto_migrate"` // default: true
}

// DSN returns the connection string for the configured driver: a libpq
// key/value string for postgres, a go-sql-driver DSN for mysql.
func (d *DatabaseConfig) DSN() string {
	switch d.Driver {
	case DriverMySQL:
		return fmt.Sprintf(
			"%s:%s@tcp(%s)/%s?parseTime=true",
			d.User, d.Password, net.JoinHostPort(d.Host, strconv.Itoa(d.Port)), d.Name,
		)
	default:
		return fmt.Sprintf(
			"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
		)
	}
}

// MigrateOnStart reports whether migrations run when a store is opened.
func (d *DatabaseConfig) MigrateOnStart() bool {
	return d.AutoMigrate == nil || *d.AutoMigrate
}

// AlertsConfig defines stock alert thresholds.
type AlertsConfig struct {
	LowStockThreshold  int    `yaml:"low_stock_threshold"`  // default: 5
	BrokenDisplayLimit int    `yaml:"broken_display_limit"` // default: 10
	DigestSchedule     string `yaml:"digest_schedule"`      // cron spec, empty disables
}

// ImportConfig defines spreadsheet import defaults. CLI flags override them.
type ImportConfig struct {
	SkipInvalidRows bool   `yaml:"skip_invalid_rows"`
	Sheet           string `yaml:"sheet"`
	ExportCSV       bool   `yaml:"export_csv"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
	Email   EmailConfig   `yaml:"email"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// EmailConfig defines SendGrid e-mail settings.
type EmailConfig struct {
	Enabled bool     `yaml:"enabled"`
	APIKey  string   `yaml:"api_key"`
	From    string   `yaml:"from"`
	To      []string `yaml:"to"`
	Host    string   `yaml:"host"` // default: https://api.sendgrid.com
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse is Load for an in-memory document.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyAlertsDefaults(&cfg.Alerts)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.MaxUploadSize == 0 {
		s.MaxUploadSize = 10 << 20
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = DriverPostgres
	}
	if d.Port == 0 {
		switch d.Driver {
		case DriverMySQL:
			d.Port = 3306
		case DriverPostgres:
			d.Port = 5432
		}
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyAlertsDefaults(a *AlertsConfig) {
	if a.LowStockThreshold == 0 {
		a.LowStockThreshold = 5
	}
	if a.BrokenDisplayLimit == 0 {
		a.BrokenDisplayLimit = 10
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Database.Driver {
	case DriverPostgres, DriverMySQL:
		if cfg.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required"))
		}
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf(
			"database.driver must be one of: postgres, mysql, memory (got %q)",
			cfg.Database.Driver,
		))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	if cfg.Alerts.LowStockThreshold < 0 {
		errs = append(errs, fmt.Errorf("alerts.low_stock_threshold must not be negative"))
	}
	if cfg.Alerts.BrokenDisplayLimit < 0 {
		errs = append(errs, fmt.Errorf("alerts.broken_display_limit must not be negative"))
	}
	if cfg.Alerts.DigestSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Alerts.DigestSchedule); err != nil {
			errs = append(errs, fmt.Errorf("alerts.digest_schedule: %w", err))
		}
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf(
			"notifications.discord.webhook_url is required when discord is enabled",
		))
	}

	if email := cfg.Notifications.Email; email.Enabled {
		if email.APIKey == "" {
			errs = append(errs, fmt.Errorf("notifications.email.api_key is required when email is enabled"))
		}
		if email.From == "" {
			errs = append(errs, fmt.Errorf("notifications.email.from is required when email is enabled"))
		}
		if len(email.To) == 0 {
			errs = append(errs, fmt.Errorf("notifications.email.to is required when email is enabled"))
		}
	}

	return errors.Join(errs...)
}
