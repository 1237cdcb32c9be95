package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL             string        `mapstructure:"url"`
	StreamName      string        `mapstructure:"stream_name"`
	MaxReconnects   int           `mapstructure:"max_reconnects"`
	ReconnectWait   time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName  string        `mapstructure:"connection_name"`
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	// CORSAllowedOrigins restricts cross-origin requests; empty allows every origin
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RateLimitConfig holds the API write rate limiter configuration
type RateLimitConfig struct {
	Enabled             bool    `mapstructure:"enabled"`
	RedisAddr           string  `mapstructure:"redis_addr"`
	RedisPassword       string  `mapstructure:"redis_password"`
	RedisDB             int     `mapstructure:"redis_db"`
	RedisKeyPrefix      string  `mapstructure:"redis_key_prefix"`
	RequestsPerSecond   int     `mapstructure:"requests_per_second"`
	Burst               int     `mapstructure:"burst"`
	EnableLocalFallback bool    `mapstructure:"enable_local_fallback"` // limit in-process while Redis is unreachable
	LocalFallbackFactor float64 `mapstructure:"local_fallback_factor"` // share of the rate each instance allows on fallback
}

// LedgerConfig describes the composable ledger instance
type LedgerConfig struct {
	// Address is the custody address the ledger occupies in child registries
	Address string `mapstructure:"address"`
	Name    string `mapstructure:"name"`
	Symbol  string `mapstructure:"symbol"`
	BaseURI string `mapstructure:"base_uri"`
	// Registries lists the child registry addresses served in-process
	Registries []string `mapstructure:"registries"`
}

// Validate checks the ledger section
func (c *LedgerConfig) Validate() error {
	if !common.IsHexAddress(c.Address) {
		return fmt.Errorf("ledger.address is not a valid address: %q", c.Address)
	}
	if common.HexToAddress(c.Address) == (common.Address{}) {
		return errors.New("ledger.address must not be the zero address")
	}
	for _, r := range c.Registries {
		if !common.IsHexAddress(r) {
			return fmt.Errorf("ledger.registries contains an invalid address: %q", r)
		}
	}
	return nil
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// RelayConfig holds the journal relay configuration
type RelayConfig struct {
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	CursorKey    string        `mapstructure:"cursor_key"`
	MaxElapsed   time.Duration `mapstructure:"max_elapsed"`
	// RetryInterval is the first delay between publish attempts
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// ConsistencySweeperConfig holds configuration for the index consistency sweeper
type ConsistencySweeperConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Worker   WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Auth       AuthConfig      `mapstructure:"auth"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Ledger     LedgerConfig    `mapstructure:"ledger"`
}

// RelayServiceConfig holds configuration for the relay program
type RelayServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Relay      RelayConfig    `mapstructure:"relay"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig         `mapstructure:",squash"`
	Database           DatabaseConfig           `mapstructure:"database"`
	Ledger             LedgerConfig             `mapstructure:"ledger"`
	ConsistencySweeper ConsistencySweeperConfig `mapstructure:"consistency_sweeper"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_factor", 0.5)
	setLedgerDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.RateLimit.Enabled && config.RateLimit.RedisAddr == "" {
		return nil, errors.New("rate_limit.redis_addr is required when rate limiting is enabled")
	}

	if err := config.Ledger.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadRelayConfig loads configuration for the relay program
func LoadRelayConfig(configFile string, envPath string) (*RelayServiceConfig, error) {
	v := configureViper("relay", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
	v.SetDefault("nats.connection_name", "ledger-relay")
	v.SetDefault("nats.duplicate_window", "2m")
	v.SetDefault("relay.batch_size", 100)
	v.SetDefault("relay.poll_interval", "1s")
	v.SetDefault("relay.cursor_key", "relay")
	v.SetDefault("relay.max_elapsed", "5m")
	v.SetDefault("relay.retry_interval", "1s")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RelayServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("consistency_sweeper.interval", "10m")
	v.SetDefault("consistency_sweeper.worker.pool_size", 10)
	v.SetDefault("consistency_sweeper.worker.queue_size", 1000)
	setLedgerDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if err := cfg.Ledger.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setLedgerDefaults(v *viper.Viper) {
	v.SetDefault("ledger.name", "Composable")
	v.SetDefault("ledger.symbol", "CMP")
	v.SetDefault("ledger.base_uri", "")
}

// readConfig reads the config file, falling back to environment variables when none exists
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.duplicate_window",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.redis_addr",
		"rate_limit.redis_password",
		"rate_limit.redis_db",
		"rate_limit.redis_key_prefix",
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.enable_local_fallback",
		"rate_limit.local_fallback_factor",
		// Ledger
		"ledger.address",
		"ledger.name",
		"ledger.symbol",
		"ledger.base_uri",
		"ledger.registries",
		// Relay
		"relay.batch_size",
		"relay.poll_interval",
		"relay.cursor_key",
		"relay.max_elapsed",
		"relay.retry_interval",
		// Consistency sweeper
		"consistency_sweeper.interval",
		"consistency_sweeper.worker.pool_size",
		"consistency_sweeper.worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
