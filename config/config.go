package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Migration MigrationConfig
	Cache     CacheConfig
}

type AppConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	TimeZone string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type MigrationConfig struct {
	AutoMigrate bool
}

type CacheConfig struct {
	StockTTL time.Duration
}

// ClientConfig drives bloodctl.
type ClientConfig struct {
	APIURL     string
	SessionDir string
	Timeout    time.Duration
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	return v
}

// readOptional reads the .env file when present. Environment variables alone are enough.
func readOptional(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) || errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil
		}
		return err
	}
	return nil
}

func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	if err := readOptional(v); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 24 * time.Hour
	}

	stockTTL, err := time.ParseDuration(v.GetString("STOCK_CACHE_TTL"))
	if err != nil {
		stockTTL = 5 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Migration: MigrationConfig{
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Cache: CacheConfig{
			StockTTL: stockTTL,
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func LoadClientConfig() (*ClientConfig, error) {
	v := newViper()
	v.SetDefault("BLOODCTL_API_URL", "http://localhost:8080/api/v1")

	if err := readOptional(v); err != nil {
		return nil, err
	}

	sessionDir := v.GetString("BLOODCTL_SESSION_DIR")
	if sessionDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		sessionDir = filepath.Join(home, ".bloodctl")
	}

	timeout, err := time.ParseDuration(v.GetString("BLOODCTL_TIMEOUT"))
	if err != nil {
		timeout = 15 * time.Second
	}

	return &ClientConfig{
		APIURL:     v.GetString("BLOODCTL_API_URL"),
		SessionDir: sessionDir,
		Timeout:    timeout,
	}, nil
}
