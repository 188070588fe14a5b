package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Admin    AdminConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	AllowedOrigin string
}

type StorageConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

type SessionConfig struct {
	Driver          string
	TTL             time.Duration
	CleanupInterval time.Duration
}

// AdminConfig holds the credentials of the account seeded at startup.
type AdminConfig struct {
	Username   string
	Password   string
	BcryptCost int
}

type BookingConfig struct {
	StrictTransitions bool
}

func LoadConfig() (*Config, error) {
	// Set defaults
	viper.SetDefault("APP_NAME", "lawncare-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	viper.SetDefault("STORAGE_DRIVER", DriverMemory)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("SESSION_CLEANUP_MINUTES", 60)
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("STRICT_STATUS_TRANSITIONS", false)

	// .env is optional; the environment always wins
	if _, err := os.Stat(".env"); err == nil {
		viper.SetConfigFile(".env")
		viper.SetConfigType("env")
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	viper.AutomaticEnv()

	storageDriver := viper.GetString("STORAGE_DRIVER")
	sessionDriver := viper.GetString("SESSION_DRIVER")
	if sessionDriver == "" {
		sessionDriver = storageDriver
	}

	config := &Config{
		App: AppConfig{
			Name:          viper.GetString("APP_NAME"),
			Port:          viper.GetString("PORT"),
			Debug:         viper.GetBool("DEBUG"),
			LogPath:       viper.GetString("LOG_PATH"),
			AllowedOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
		Storage: StorageConfig{
			Driver: storageDriver,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		Session: SessionConfig{
			Driver:          sessionDriver,
			TTL:             time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CleanupInterval: time.Duration(viper.GetInt("SESSION_CLEANUP_MINUTES")) * time.Minute,
		},
		Admin: AdminConfig{
			Username:   viper.GetString("ADMIN_USERNAME"),
			Password:   viper.GetString("ADMIN_PASSWORD"),
			BcryptCost: viper.GetInt("BCRYPT_COST"),
		},
		Booking: BookingConfig{
			StrictTransitions: viper.GetBool("STRICT_STATUS_TRANSITIONS"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the selected backends have what they need to connect.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			errs = append(errs, errors.New("postgres storage requires DB_HOST, DB_NAME and DB_USER"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	switch c.Session.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.Driver != DriverPostgres {
			errs = append(errs, errors.New("postgres sessions require STORAGE_DRIVER=postgres"))
		}
	case DriverRedis:
		if c.Redis.Address == "" {
			errs = append(errs, errors.New("redis sessions require REDIS_ADDR"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_DRIVER %q", c.Session.Driver))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be positive"))
	}

	return errors.Join(errs...)
}
