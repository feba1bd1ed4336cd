package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Redis      RedisConfig
	Attendance AttendanceConfig
	Cron       CronConfig
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"homestay"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns int32  `env:"DB_MIN_CONNS" envDefault:"5"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string `env:"JWT_SECRET_KEY"`
	AccessExpiration string `env:"JWT_ACCESS_EXPIRATION_TIME" envDefault:"1h"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int      `env:"APP_PORT" envDefault:"8080"`
	Env         string   `env:"APP_ENV" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	Timezone    string   `env:"APP_TIMEZONE" envDefault:"Asia/Jakarta"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// RedisConfig is optional. An empty Addr keeps shift write locks in-process.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Prefix   string `env:"REDIS_PREFIX" envDefault:"homestay"`
}

type AttendanceConfig struct {
	GracePeriodMinutes int `env:"ATTENDANCE_GRACE_PERIOD_MINUTES" envDefault:"15"`
}

type CronConfig struct {
	Enabled             bool          `env:"CRON_ENABLED" envDefault:"true"`
	MissedShiftInterval time.Duration `env:"CRON_MISSED_SHIFT_INTERVAL" envDefault:"1h"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if c.Attendance.GracePeriodMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_GRACE_PERIOD_MINUTES must not be negative")
	}
	if c.Cron.Enabled && c.Cron.MissedShiftInterval <= 0 {
		return fmt.Errorf("CRON_MISSED_SHIFT_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the business timezone used to derive calendar days.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.Attendance.GracePeriodMinutes) * time.Minute
}

func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
