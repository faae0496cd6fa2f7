package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Monitoring MonitoringConfig
	Booking    BookingConfig
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
	MetricsPath       string `mapstructure:"metrics_path"`
}

// BookingConfig tunes slot generation and the cancellation policy.
// ReleaseCancelledSlots frees a cancelled appointment's slot for
// rebooking; the default keeps cancelled slots occupied.
type BookingConfig struct {
	WindowDays            int    `mapstructure:"window_days"`
	GridStart             string `mapstructure:"grid_start"`
	GridEnd               string `mapstructure:"grid_end"`
	GridStepMinutes       int    `mapstructure:"grid_step_minutes"`
	ReleaseCancelledSlots bool   `mapstructure:"release_cancelled_slots"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", true)
	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.requests_per_second", 50.0)
	viper.SetDefault("ratelimit.burst", 100)
	viper.SetDefault("monitoring.prometheus_enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")
	viper.SetDefault("booking.window_days", 7)
	viper.SetDefault("booking.grid_start", "09:00")
	viper.SetDefault("booking.grid_end", "17:00")
	viper.SetDefault("booking.grid_step_minutes", 60)
	viper.SetDefault("booking.release_cancelled_slots", false)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, defaults plus env cover local runs.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
