package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/UPAO-INSO/caso-agile-sub000/pkg/kafka"
	"github.com/UPAO-INSO/caso-agile-sub000/pkg/observability"
	"github.com/UPAO-INSO/caso-agile-sub000/pkg/postgres"
)

// Config holds everything the loan service needs at startup. All values come
// from the environment with local-development defaults.
type Config struct {
	ServiceName string
	GRPCPort    int
	HTTPPort    int

	DB    postgres.Config
	Kafka kafka.Config
	Log   observability.LogConfig

	// MigrationsDir points at the SQL migration files applied on boot.
	MigrationsDir string

	// ArrearsCron is the cron expression for the nightly arrears refresh.
	ArrearsCron string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		ServiceName: "loan-service",
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loans"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "loans"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			AppName:  "loan-service",
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: kafka.Config{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		Log: observability.LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/infrastructure/postgres/migrations"),
		ArrearsCron:   getEnv("ARREARS_CRON", "0 2 * * *"),
	}
}

// Validate fails fast on configuration that cannot work in production.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
