package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration, read once at startup.
type Config struct {
	Port     string
	LogLevel string
	Database Database
	Auth     Auth
	Server   Server
}

type Database struct {
	URL             string
	AutoMigrate     bool
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type Auth struct {
	SecretKey string
	TokenTTL  time.Duration
}

type Server struct {
	ShutdownTimeout time.Duration
}

var ErrMissingSecret = errors.New("auth.secret_key (SECRET_KEY) is required")

// env bindings for keys that do not follow the KEY_PATH naming.
var envBindings = map[string]string{
	"port":                       "PORT",
	"log.level":                  "LOG_LEVEL",
	"database.url":               "DATABASE_URL",
	"database.auto_migrate":      "DB_AUTO_MIGRATE",
	"database.max_open_conns":    "DB_MAX_OPEN_CONNS",
	"database.conn_max_lifetime": "DB_CONN_MAX_LIFETIME",
	"auth.secret_key":            "SECRET_KEY",
	"auth.token_ttl_minutes":     "ACCESS_TOKEN_EXPIRE_MINUTES",
	"server.shutdown_timeout":    "SHUTDOWN_TIMEOUT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.url", "sqlite://todo.db")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("auth.token_ttl_minutes", 30)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Load reads .env (if present), configs/config.yml (if present) and the
// environment, in increasing order of precedence.
func Load(configPaths ...string) (Config, error) {
	_ = godotenv.Load() // load .env if present (ok if missing in prod)

	v := viper.New()
	setDefaults(v)

	if len(configPaths) == 0 {
		configPaths = []string{"configs"}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p) // configs/config.yml
	}
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:     v.GetString("port"),
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		Database: Database{
			URL:             strings.TrimSpace(v.GetString("database.url")),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Auth: Auth{
			SecretKey: v.GetString("auth.secret_key"),
			TokenTTL:  time.Duration(v.GetInt("auth.token_ttl_minutes")) * time.Minute,
		},
		Server: Server{
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate reports configuration that the process cannot start with.
func (c Config) Validate() error {
	if c.Auth.SecretKey == "" {
		return ErrMissingSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl_minutes must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Database.URL == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}
	return nil
}
