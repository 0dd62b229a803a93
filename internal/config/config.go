package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates every tunable part of the application.
type Config struct {
	App     AppConfig
	DB      DBConfig
	Log     LogConfig
	Auth    AuthConfig
	Swagger SwaggerConfig
}

// AppConfig contains settings related to the HTTP server.
type AppConfig struct {
	Port string
	Env  string
}

// DBConfig selects the database driver and its connection settings. The
// "memory" driver keeps data in process and needs no connection.
type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path is the SQLite database file.
	Path string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN builds the driver-specific connection string.
func (db DBConfig) DSN() string {
	if db.Driver == "sqlite" {
		return db.Path
	}

	host := db.Host
	if host == "" {
		host = "localhost"
	}

	port := db.Port
	if port == "" {
		port = "5432"
	}

	sslMode := db.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     host + ":" + port,
		Path:     "/" + db.Name,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// LogConfig controls logger behavior.
type LogConfig struct {
	Level  string
	Format string
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// SwaggerConfig configures the generated documentation.
type SwaggerConfig struct {
	Host string
}

// Load reads .env from the working directory if present, then environment
// variables, and validates the final configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	var errs []error
	cfg := Config{
		App: AppConfig{
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "dev"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			Path:            getEnv("DB_PATH", "subscriptions.db"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 0, &errs),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 0, &errs),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", time.Hour, &errs),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getDuration("JWT_TTL", 24*time.Hour, &errs),
		},
		Swagger: SwaggerConfig{
			Host: getEnv("SWAGGER_HOST", ""),
		},
	}

	if cfg.Swagger.Host == "" {
		cfg.Swagger.Host = fmt.Sprintf("localhost:%s", cfg.App.Port)
	}

	if err := cfg.validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	var missing []string

	switch cfg.DB.Driver {
	case "postgres", "pgx":
		if cfg.DB.User == "" {
			missing = append(missing, "DB_USER")
		}
		if cfg.DB.Password == "" {
			missing = append(missing, "DB_PASSWORD")
		}
		if cfg.DB.Name == "" {
			missing = append(missing, "DB_NAME")
		}
	case "sqlite":
		if cfg.DB.Path == "" {
			missing = append(missing, "DB_PATH")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres, pgx, sqlite or memory)", cfg.DB.Driver)
	}

	if cfg.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q (want json or text)", cfg.Log.Format)
	}

	return nil
}

func getEnv(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int, errs *[]error) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
