package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
database:
  host: localhost
  name: stock
  user: stock
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DriverPostgres, cfg.Database.Driver)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "stock", cfg.Database.Name)
				assert.Equal(t, "stock", cfg.Database.User)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
database:
  host: localhost
  name: stock
  user: stock
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadSize)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.True(t, cfg.Database.MigrateOnStart())
				assert.Equal(t, 5, cfg.Alerts.LowStockThreshold)
				assert.Equal(t, 10, cfg.Alerts.BrokenDisplayLimit)
				assert.Empty(t, cfg.Alerts.DigestSchedule)
				assert.False(t, cfg.Import.SkipInvalidRows)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "mysql default port",
			yaml: `
database:
  driver: mysql
  host: db
  name: inventaire
  user: root
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 3306, cfg.Database.Port)
			},
		},
		{
			name: "memory driver needs no connection settings",
			yaml: `
database:
  driver: memory
  auto_migrate: false
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DriverMemory, cfg.Database.Driver)
				assert.False(t, cfg.Database.MigrateOnStart())
			},
		},
		{
			name: "env var substitution",
			yaml: `
database:
  host: localhost
  name: stock
  user: stock
  password: ${TEST_STOCK_DB_PASSWORD}
notifications:
  email:
    enabled: true
    api_key: ${TEST_STOCK_SENDGRID_KEY}
    from: stock@example.com
    to: [ops@example.com]
`,
			envVars: map[string]string{
				"TEST_STOCK_DB_PASSWORD":  "s3cret",
				"TEST_STOCK_SENDGRID_KEY": "SG.key",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "s3cret", cfg.Database.Password)
				assert.Equal(t, "SG.key", cfg.Notifications.Email.APIKey)
				assert.Equal(t, []string{"ops@example.com"}, cfg.Notifications.Email.To)
			},
		},
		{
			name: "alerts and import sections",
			yaml: `
database:
  driver: memory
alerts:
  low_stock_threshold: 3
  broken_display_limit: 4
  digest_schedule: "0 8 * * 1-5"
import:
  skip_invalid_rows: true
  sheet: Stock
  export_csv: true
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 3, cfg.Alerts.LowStockThreshold)
				assert.Equal(t, 4, cfg.Alerts.BrokenDisplayLimit)
				assert.Equal(t, "0 8 * * 1-5", cfg.Alerts.DigestSchedule)
				assert.True(t, cfg.Import.SkipInvalidRows)
				assert.Equal(t, "Stock", cfg.Import.Sheet)
				assert.True(t, cfg.Import.ExportCSV)
			},
		},
		{
			name: "missing database host",
			yaml: `
database:
  name: stock
  user: stock
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing database name and user",
			yaml: `
database:
  host: localhost
`,
			wantErr: "database.name is required",
		},
		{
			name: "unknown driver",
			yaml: `
database:
  driver: sqlite
`,
			wantErr: "database.driver must be one of",
		},
		{
			name: "invalid digest schedule",
			yaml: `
database:
  driver: memory
alerts:
  digest_schedule: "every tuesday"
`,
			wantErr: "alerts.digest_schedule",
		},
		{
			name: "negative threshold",
			yaml: `
database:
  driver: memory
alerts:
  low_stock_threshold: -1
`,
			wantErr: "low_stock_threshold must not be negative",
		},
		{
			name: "discord enabled without webhook",
			yaml: `
database:
  driver: memory
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required",
		},
		{
			name: "email enabled without recipients",
			yaml: `
database:
  driver: memory
notifications:
  email:
    enabled: true
    api_key: SG.key
    from: stock@example.com
`,
			wantErr: "notifications.email.to is required",
		},
		{
			name: "invalid port",
			yaml: `
server:
  port: 70000
database:
  driver: memory
`,
			wantErr: "server.port must be between",
		},
		{
			name:    "invalid YAML",
			yaml:    "database: [",
			wantErr: "parsing config YAML",
		},
		{
			name: "logging config",
			yaml: `
database:
  driver: memory
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "postgres key/value DSN",
			cfg: DatabaseConfig{
				Driver:   DriverPostgres,
				Host:     "localhost",
				Port:     5432,
				Name:     "stock",
				User:     "stock",
				Password: "pw",
				SSLMode:  "disable",
			},
			want: "host=localhost port=5432 dbname=stock user=stock password=pw sslmode=disable",
		},
		{
			name: "mysql DSN",
			cfg: DatabaseConfig{
				Driver:   DriverMySQL,
				Host:     "db",
				Port:     3306,
				Name:     "inventaire",
				User:     "root",
				Password: "pw",
			},
			want: "root:pw@tcp(db:3306)/inventaire?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 9090}
	assert.Equal(t, "127.0.0.1:9090", s.Addr())
}
