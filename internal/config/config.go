package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ConfigError describe una variable faltante o inválida. Es fatal al arrancar.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

type DBConfig struct {
	// Driver: "pgx" (default) o "sqlite".
	Driver string

	// URL tiene prioridad sobre los campos sueltos. Con sqlite es la ruta/DSN del archivo.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type LineConfig struct {
	ChannelAccessToken string
	ChannelSecret      string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type Config struct {
	Port       string
	AdminToken string

	DB    DBConfig
	Line  LineConfig
	Redis RedisConfig
}

// Load lee .env (si existe) y luego el entorno.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &ConfigError{Field: ".env", Message: err.Error()}
	}
	return FromEnv()
}

// FromEnv arma la configuración sólo desde variables de entorno.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:       envOr("PORT", "8080"),
		AdminToken: strings.TrimSpace(os.Getenv("ADMIN_TOKEN")),
		DB: DBConfig{
			Driver:   strings.ToLower(envOr("DB_DRIVER", "pgx")),
			URL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
			Host:     strings.TrimSpace(os.Getenv("DB_HOST")),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     strings.TrimSpace(os.Getenv("DB_NAME")),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
		Line: LineConfig{
			ChannelAccessToken: strings.TrimSpace(os.Getenv("CHANNEL_ACCESS_TOKEN")),
			ChannelSecret:      strings.TrimSpace(os.Getenv("CHANNEL_SECRET")),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	var err error
	if cfg.DB.Port, err = envInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Redis.TTL, err = envDuration("PROFILE_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate exige todo lo necesario para servir el webhook.
func (c *Config) Validate() error {
	if c.Line.ChannelAccessToken == "" {
		return &ConfigError{Field: "CHANNEL_ACCESS_TOKEN", Message: "required"}
	}
	if c.Line.ChannelSecret == "" {
		return &ConfigError{Field: "CHANNEL_SECRET", Message: "required"}
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return &ConfigError{Field: "PORT", Message: "must be a number"}
	}
	return c.ValidateStore()
}

// ValidateStore exige sólo la base de datos (init-db, export).
func (c *Config) ValidateStore() error {
	switch c.DB.Driver {
	case "pgx", "postgres", "postgresql":
		if c.DB.URL != "" {
			return nil
		}
		if c.DB.Host == "" {
			return &ConfigError{Field: "DB_HOST", Message: "required when DATABASE_URL is not set"}
		}
		if c.DB.Name == "" {
			return &ConfigError{Field: "DB_NAME", Message: "required when DATABASE_URL is not set"}
		}
		if c.DB.User == "" {
			return &ConfigError{Field: "DB_USER", Message: "required when DATABASE_URL is not set"}
		}
		return nil
	case "sqlite", "sqlite3":
		if c.DB.URL == "" {
			return &ConfigError{Field: "DATABASE_URL", Message: "required for sqlite"}
		}
		return nil
	default:
		return &ConfigError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", c.DB.Driver)}
	}
}

// DSN devuelve DATABASE_URL o la URL postgres armada con los campos sueltos.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr para http.Server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: "must be an integer"}
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, &ConfigError{Field: key, Message: "must be a positive duration like 30m"}
	}
	return d, nil
}
