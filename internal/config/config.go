// Package config loads the service configuration from defaults, an optional
// YAML file and GYM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"

	"gym_backend/pkg/utils"
)

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Morosos       MorososConfig       `mapstructure:"morosos"`
	Recordatorios RecordatoriosConfig `mapstructure:"recordatorios"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Sentry        SentryConfig        `mapstructure:"sentry"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	Timezone string `mapstructure:"timezone"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
}

type HTTPConfig struct {
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Migrate         bool          `mapstructure:"migrate"`
}

// AuthConfig selects the credential store and token policy.
// Store is "static" (single account from Usuario/Password) or "db".
type AuthConfig struct {
	Store        string        `mapstructure:"store"`
	Usuario      string        `mapstructure:"usuario"`
	Password     string        `mapstructure:"password"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTTTL       time.Duration `mapstructure:"jwt_ttl"`
	RequireToken bool          `mapstructure:"require_token"`
}

// MorososConfig holds the two overdue thresholds. They are independent on purpose:
// the list endpoint and the dashboard counter use different values.
type MorososConfig struct {
	DiasLista     int `mapstructure:"dias_lista"`
	DiasDashboard int `mapstructure:"dias_dashboard"`
}

type RecordatoriosConfig struct {
	DiasAnticipacion int `mapstructure:"dias_anticipacion"`
}

// RedisConfig enables the client list cache when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.timezone", "America/Bogota")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.version", "dev")

	v.SetDefault("http.port", "3000")
	v.SetDefault("http.cors_origins", []string{"*"})

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "gym_user")
	v.SetDefault("database.password", "gym_password")
	v.SetDefault("database.name", "gym_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.migrate", true)

	v.SetDefault("auth.store", "static")
	v.SetDefault("auth.usuario", "admin")
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_ttl", 12*time.Hour)
	v.SetDefault("auth.require_token", false)

	v.SetDefault("morosos.dias_lista", 7)
	v.SetDefault("morosos.dias_dashboard", 27)
	v.SetDefault("recordatorios.dias_anticipacion", 3)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("metrics.enabled", true)
}

// Load reads the configuration. An empty path looks for config.yaml in . and ./config
// (or the file named by GYM_CONFIG) and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = utils.Getenv("GYM_CONFIG", "")
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("GYM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.Morosos.DiasLista < 0 || c.Morosos.DiasDashboard < 0 {
		return errors.New("config: morosos thresholds cannot be negative")
	}
	if c.Recordatorios.DiasAnticipacion < 0 {
		return errors.New("config: recordatorios.dias_anticipacion cannot be negative")
	}
	switch c.Auth.Store {
	case "static", "db":
	default:
		return fmt.Errorf("config: unknown auth.store %q", c.Auth.Store)
	}
	if c.Auth.RequireToken && c.Auth.JWTSecret == "" {
		return errors.New("config: auth.require_token needs auth.jwt_secret")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("config: invalid app.timezone %q: %w", c.App.Timezone, err)
	}
	return nil
}

// Location returns the timezone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDev reports whether the service runs in development mode.
func (c *Config) IsDev() bool {
	return c.App.Env == "dev"
}

// ConnString returns the DSN when set, otherwise a key/value connection string.
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
