// Package config reads the service configuration from the environment, an optional .env file and
// an optional YAML file named by CONFIG_PATH.
//
// Usage example:
//
//	> PORT=8080 DBUSER=dirk DBPWD=bullo92 DBHOST=localhost:3306 go run ./cmd/service
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Supported values of DBDRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config is the complete service configuration.
type Config struct {
	Env        string `yaml:"env"         env:"APP_ENV"     env-default:"development"`
	Port       string `yaml:"port"        env:"PORT"        env-default:"8080"`
	GinLogging string `yaml:"gin_logging" env:"GIN_LOGGING" env-default:"on"`

	Database Database `yaml:"database"`
	Uploads  Uploads  `yaml:"uploads"`
	HTTP     HTTP     `yaml:"http"`
}

// Database holds the connection parameters of the row store.
type Database struct {
	Driver          string        `yaml:"driver"            env:"DBDRIVER"             env-default:"mysql"`
	User            string        `yaml:"user"              env:"DBUSER"`
	Password        string        `yaml:"password"          env:"DBPWD"`
	Host            string        `yaml:"host"              env:"DBHOST"               env-default:"localhost:3306"`
	Name            string        `yaml:"name"              env:"DBNAME"               env-default:"test"`
	DSN             string        `yaml:"dsn"               env:"DBDSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"    env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
}

// Uploads configures the public directory and the avatar upload limits.
type Uploads struct {
	PublicDir      string `yaml:"public_dir"       env:"PUBLIC_DIR"       env-default:"public"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES" env-default:"5242880"`
}

// HTTP configures the HTTP server.
type HTTP struct {
	CORSOrigins     []string      `yaml:"cors_origins"     env:"CORS_ORIGINS"       env-default:"*" env-separator:","`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HTTP_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"HTTP_IDLE_TIMEOUT"  env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"   env-default:"10s"`
}

// Load reads the configuration. A .env file in the working directory is loaded first if it
// exists; variables that are already set are not overwritten by it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("could not parse PORT %q: %w", c.Port, err)
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DBDRIVER %q", c.Database.Driver)
	}
	if c.Uploads.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.Uploads.MaxUploadBytes)
	}
	return nil
}

// RequestLogging reports whether HTTP requests shall be logged.
func (c *Config) RequestLogging() bool {
	return !strings.EqualFold(c.GinLogging, "off")
}

// Production reports whether the service runs in production mode.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// DataSourceName builds the driver specific DSN unless an explicit one was configured.
func (d Database) DataSourceName() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case DriverPostgres:
		host, port, found := strings.Cut(d.Host, ":")
		if !found {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, d.User, d.Password, d.Name)
	case DriverSQLite:
		return d.Name + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Name)
	}
}
