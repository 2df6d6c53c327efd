package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// bcrypt cost bounds; 0 selects the library default.
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	BasePath              string
	RequestTimeoutSeconds int
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver    string
	SQLiteDSN string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

var defaults = map[string]any{
	"APP_NAME":                       "employee-service",
	"APP_ENV":                        "development",
	"APP_HOST":                       "0.0.0.0",
	"APP_PORT":                       "8080",
	"APP_VERSION":                    "dev",
	"APP_BASE_PATH":                  "/api",
	"HTTP_REQUEST_TIMEOUT_SECONDS":   30,
	"STORE_DRIVER":                   StoreDriverPostgres,
	"SQLITE_DSN":                     "file:employee-service.db?_foreign_keys=on",
	"POSTGRES_DSN":                   "",
	"POSTGRES_MAX_CONNS":             10,
	"POSTGRES_MIN_CONNS":             2,
	"POSTGRES_RUN_MIGRATIONS":        true,
	"POSTGRES_CONN_MAX_IDLE_SECONDS": 30,
	"POSTGRES_CONN_MAX_LIFE_SECONDS": 300,
	"REDIS_ADDR":                     "",
	"REDIS_PASSWORD":                 "",
	"REDIS_DB":                       0,
	"LOG_LEVEL":                      "info",
	"AUTH_JWT_SECRET":                "dev-secret",
	"AUTH_ACCESS_TOKEN_TTL_MINUTES":  60,
	"AUTH_BCRYPT_COST":               12,
}

// Load reads configuration from the environment (and .env), optionally
// overlaid by a YAML/JSON/TOML file at path. Environment variables win over
// the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  v.GetString("APP_NAME"),
			Env:                   v.GetString("APP_ENV"),
			Host:                  v.GetString("APP_HOST"),
			Port:                  v.GetString("APP_PORT"),
			Version:               v.GetString("APP_VERSION"),
			BasePath:              normalizeBasePath(v.GetString("APP_BASE_PATH")),
			RequestTimeoutSeconds: v.GetInt("HTTP_REQUEST_TIMEOUT_SECONDS"),
		},
		Store: StoreConfig{
			Driver:    strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			SQLiteDSN: v.GetString("SQLITE_DSN"),
		},
		Postgres: PostgresConfig{
			DSN:            v.GetString("POSTGRES_DSN"),
			MaxConns:       v.GetInt32("POSTGRES_MAX_CONNS"),
			MinConns:       v.GetInt32("POSTGRES_MIN_CONNS"),
			RunMigrations:  v.GetBool("POSTGRES_RUN_MIGRATIONS"),
			ConnMaxIdleSec: v.GetInt32("POSTGRES_CONN_MAX_IDLE_SECONDS"),
			ConnMaxLifeSec: v.GetInt32("POSTGRES_CONN_MAX_LIFE_SECONDS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:             v.GetString("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: v.GetInt("AUTH_ACCESS_TOKEN_TTL_MINUTES"),
			BcryptCost:            v.GetInt("AUTH_BCRYPT_COST"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: want %q or %q", c.Store.Driver, StoreDriverPostgres, StoreDriverSQLite)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET must not be empty")
	}
	if cost := c.Auth.BcryptCost; cost != 0 && (cost < minBcryptCost || cost > maxBcryptCost) {
		return fmt.Errorf("AUTH_BCRYPT_COST %d out of range %d..%d", cost, minBcryptCost, maxBcryptCost)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the bearer token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}
