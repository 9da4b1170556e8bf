package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv string
	Port   string

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Owner    OwnerBootstrapConfig

	DefaultTimezone string
	AutoMigrate     bool
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	Path     string
	Retries  int
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type OwnerBootstrapConfig struct {
	Username string
	Email    string
	Password string
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "timeclock")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "timeclock.db")
	v.SetDefault("DB_RETRIES", 5)

	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("DEFAULT_TIMEZONE", "Local")
	v.SetDefault("AUTO_MIGRATE", true)

	v.SetDefault("BOOTSTRAP_OWNER_USERNAME", "owner")
	v.SetDefault("BOOTSTRAP_OWNER_EMAIL", "owner@system.com")
	v.SetDefault("BOOTSTRAP_OWNER_PASSWORD", "owner123")
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppEnv: v.GetString("APP_ENV"),
		Port:   v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Port:     v.GetString("DB_PORT"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			Path:     v.GetString("DB_PATH"),
			Retries:  v.GetInt("DB_RETRIES"),
		},
		Redis: RedisConfig{Addr: v.GetString("REDIS_ADDR")},
		Kafka: KafkaConfig{Broker: v.GetString("KAFKA_BROKER")},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("TOKEN_TTL"),
		},
		Owner: OwnerBootstrapConfig{
			Username: v.GetString("BOOTSTRAP_OWNER_USERNAME"),
			Email:    v.GetString("BOOTSTRAP_OWNER_EMAIL"),
			Password: v.GetString("BOOTSTRAP_OWNER_PASSWORD"),
		},
		DefaultTimezone: v.GetString("DEFAULT_TIMEZONE"),
		AutoMigrate:     v.GetBool("AUTO_MIGRATE"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the zone used when a company has none configured.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SigningSecret falls back to a fixed development key outside production.
func (c Config) SigningSecret() []byte {
	if c.Auth.JWTSecret == "" {
		return []byte("timeclock-development-secret")
	}
	return []byte(c.Auth.JWTSecret)
}
