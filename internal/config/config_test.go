package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLedgerAddress = "0x00000000000000000000000000000000000000aa"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(content), 0600)
	require.NoError(t, err)
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
auth:
  jwt_public_key: "key"
  api_keys: ["k1", "k2"]
ledger:
  address: "` + testLedgerAddress + `"
  name: "Bundles"
  symbol: "BND"
  base_uri: "https://example.com/bundles/"
  registries:
    - "0x00000000000000000000000000000000000000bb"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, []string{"k1", "k2"}, cfg.Auth.APIKeys)
				assert.Equal(t, testLedgerAddress, cfg.Ledger.Address)
				assert.Equal(t, "Bundles", cfg.Ledger.Name)
				assert.Equal(t, "BND", cfg.Ledger.Symbol)
				assert.Equal(t, "https://example.com/bundles/", cfg.Ledger.BaseURI)
				assert.Len(t, cfg.Ledger.Registries, 1)
			},
		},
		{
			name: "ledger defaults",
			configFile: `
ledger:
  address: "` + testLedgerAddress + `"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "Composable", cfg.Ledger.Name)
				assert.Equal(t, "CMP", cfg.Ledger.Symbol)
				assert.False(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 10, cfg.RateLimit.Burst)
				assert.True(t, cfg.RateLimit.EnableLocalFallback)
			},
		},
		{
			name: "rate limit",
			configFile: `
rate_limit:
  enabled: true
  redis_addr: "localhost:6379"
  requests_per_second: 2
ledger:
  address: "` + testLedgerAddress + `"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, "localhost:6379", cfg.RateLimit.RedisAddr)
				assert.Equal(t, 2, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 0.5, cfg.RateLimit.LocalFallbackFactor)
			},
		},
		{
			name: "rate limit without redis",
			configFile: `
rate_limit:
  enabled: true
ledger:
  address: "` + testLedgerAddress + `"
`,
			expectError: true,
		},
		{
			name:        "missing ledger address",
			configFile:  "debug: true\n",
			expectError: true,
		},
		{
			name: "invalid registry address",
			configFile: `
ledger:
  address: "` + testLedgerAddress + `"
  registries: ["not-an-address"]
`,
			expectError: true,
		},
		{
			name:        "invalid yaml",
			configFile:  "ledger: [",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadRelayConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadRelayConfig(writeConfig(t, `
nats:
  url: "nats://localhost:4222"
database:
  host: localhost
  dbname: ledger
`), t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
		assert.Equal(t, "LEDGER_EVENTS", cfg.NATS.StreamName)
		assert.Equal(t, 10, cfg.NATS.MaxReconnects)
		assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
		assert.Equal(t, 2*time.Minute, cfg.NATS.DuplicateWindow)
		assert.Equal(t, 100, cfg.Relay.BatchSize)
		assert.Equal(t, time.Second, cfg.Relay.PollInterval)
		assert.Equal(t, "relay", cfg.Relay.CursorKey)
		assert.Equal(t, 5*time.Minute, cfg.Relay.MaxElapsed)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := LoadRelayConfig(writeConfig(t, `
nats:
  url: "nats://nats:4222"
  stream_name: "CUSTOM"
relay:
  batch_size: 5
  poll_interval: "250ms"
  cursor_key: "relay-b"
`), t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "CUSTOM", cfg.NATS.StreamName)
		assert.Equal(t, 5, cfg.Relay.BatchSize)
		assert.Equal(t, 250*time.Millisecond, cfg.Relay.PollInterval)
		assert.Equal(t, "relay-b", cfg.Relay.CursorKey)
	})

	t.Run("missing nats url", func(t *testing.T) {
		_, err := LoadRelayConfig(writeConfig(t, "debug: true\n"), t.TempDir())
		assert.Error(t, err)
	})
}

func TestLoadSweeperConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *SweeperConfig)
	}{
		{
			name: "defaults",
			configFile: `
database:
  host: localhost
  dbname: ledger
ledger:
  address: "` + testLedgerAddress + `"
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, 5, cfg.Database.MaxOpenConns)
				assert.Equal(t, 2, cfg.Database.MaxIdleConns)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, 10*time.Minute, cfg.Database.ConnMaxIdleTime)
				assert.Equal(t, 10*time.Minute, cfg.ConsistencySweeper.Interval)
				assert.Equal(t, 10, cfg.ConsistencySweeper.Worker.WorkerPoolSize)
				assert.Equal(t, 1000, cfg.ConsistencySweeper.Worker.WorkerQueueSize)
			},
		},
		{
			name: "custom worker settings",
			configFile: `
database:
  host: localhost
  dbname: ledger
ledger:
  address: "` + testLedgerAddress + `"
consistency_sweeper:
  interval: "30s"
  worker:
    pool_size: 3
    queue_size: 7
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, 30*time.Second, cfg.ConsistencySweeper.Interval)
				assert.Equal(t, 3, cfg.ConsistencySweeper.Worker.WorkerPoolSize)
				assert.Equal(t, 7, cfg.ConsistencySweeper.Worker.WorkerQueueSize)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: ledger
ledger:
  address: "` + testLedgerAddress + `"
`,
			expectError: true,
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
ledger:
  address: "` + testLedgerAddress + `"
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadSweeperConfig(writeConfig(t, tt.configFile), t.TempDir())
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLedgerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  LedgerConfig
		wantErr bool
	}{
		{name: "valid", config: LedgerConfig{Address: testLedgerAddress}},
		{name: "empty", config: LedgerConfig{}, wantErr: true},
		{name: "not hex", config: LedgerConfig{Address: "ledger"}, wantErr: true},
		{name: "zero address", config: LedgerConfig{Address: "0x0000000000000000000000000000000000000000"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		ReadHost: "replica",
		User:     "u",
		Password: "p",
		DBName:   "ledger",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ledger sslmode=disable", cfg.DSN())
	assert.Equal(t, "host=replica port=5432 user=u password=p dbname=ledger sslmode=disable", cfg.ReadDSN())

	cfg.ReadPort = 6432
	assert.Equal(t, "host=replica port=6432 user=u password=p dbname=ledger sslmode=disable", cfg.ReadDSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// godotenv.Overload sets process variables, so they are removed once the test ends
	vars := map[string]string{
		"FF_LEDGER_DEBUG":          "true",
		"FF_LEDGER_DATABASE_HOST":  "env-host",
		"FF_LEDGER_DATABASE_PORT":  "3306",
		"FF_LEDGER_LEDGER_ADDRESS": testLedgerAddress,
	}
	envContent := ""
	for k, v := range vars {
		envContent += k + "=" + v + "\n"
		key := k
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// A service specific file overrides the shared one
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.api.local"), []byte("FF_LEDGER_DATABASE_HOST=api-host\n"), 0600))

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
`)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "api-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, testLedgerAddress, cfg.Ledger.Address)
}
