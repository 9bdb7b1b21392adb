package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string         `mapstructure:"server_port"`
	SwaggerHost string         `mapstructure:"swagger_host"`
	LogLevel    string         `mapstructure:"log_level"`
	ResetDB     bool           `mapstructure:"reset_db"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Session     SessionConfig  `mapstructure:"session"`
	MinIO       MinIOConfig    `mapstructure:"minio"`
	ClamdAddr   string         `mapstructure:"clamd_addr"`
}

// DatabaseConfig selects the SQL driver and its DSN.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	MySQLDSN     string `mapstructure:"mysql_dsn"`
	PostgresDSN  string `mapstructure:"postgres_dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return d.PostgresDSN
	}
	return d.MySQLDSN
}

// RedisConfig contains redis connection options.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig controls the session and refresh cookies.
type SessionConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TTL          time.Duration `mapstructure:"ttl"`
	RefreshTTL   time.Duration `mapstructure:"refresh_ttl"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
	CookieDomain string        `mapstructure:"cookie_domain"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
	PublicURL       string `mapstructure:"public_url"`
}

// Load builds Config from environment (and an optional .env file) with sensible defaults.
func Load() (*Config, error) {
	// A missing .env is the normal case in containers.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("reset_db", false)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.mysql_dsn", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("database.postgres_dsn", "host=localhost port=5432 user=app password=app dbname=app sslmode=disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.jwt_secret", "change-me")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.refresh_ttl", 30*24*time.Hour)
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "uploads")
	v.SetDefault("minio.public_url", "http://localhost:9000")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"server_port":             "SERVER_PORT",
		"swagger_host":            "SWAGGER_HOST",
		"log_level":               "LOG_LEVEL",
		"reset_db":                "RESET_DB",
		"clamd_addr":              "CLAMD_ADDR",
		"database.driver":         "DB_DRIVER",
		"database.mysql_dsn":      "MYSQL_DSN",
		"database.postgres_dsn":   "POSTGRES_DSN",
		"database.max_open_conns": "DB_MAX_OPEN_CONNS",
		"database.max_idle_conns": "DB_MAX_IDLE_CONNS",
		"redis.addr":              "REDIS_ADDR",
		"redis.password":          "REDIS_PASSWORD",
		"redis.db":                "REDIS_DB",
		"session.jwt_secret":      "JWT_SECRET",
		"session.ttl":             "SESSION_TTL",
		"session.refresh_ttl":     "REFRESH_TTL",
		"session.cookie_secure":   "COOKIE_SECURE",
		"session.cookie_domain":   "COOKIE_DOMAIN",
		"minio.endpoint":          "MINIO_ENDPOINT",
		"minio.access_key_id":     "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key": "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":           "MINIO_USE_SSL",
		"minio.bucket":            "MINIO_BUCKET",
		"minio.public_url":        "MINIO_PUBLIC_URL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.ServerPort == "" {
		return errors.New("server port is required")
	}
	switch cfg.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN() == "" {
		return errors.New("database dsn is required")
	}
	if cfg.Session.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if cfg.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if cfg.Session.RefreshTTL < cfg.Session.TTL {
		return errors.New("refresh ttl must not be shorter than session ttl")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	return nil
}
