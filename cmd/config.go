package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"agu/internal/core/domain/validation"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the cross-replica fetch lock. Empty keeps the lock in process.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PredictionServiceURL string
	PredictionTimeout    time.Duration
	PredictionSchedule   string
	PredictionDays       int

	FetchTimeout     time.Duration
	CycleTimeout     time.Duration
	DefaultFrequency time.Duration
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the process environment. Unset variables take defaults;
// malformed ones are reported.
func LoadConfig() (Config, error) {
	var err error
	c := Config{
		HTTPPort:             env("HTTP_PORT", "8080"),
		DBHost:               env("DB_HOST", "localhost"),
		DBPort:               env("DB_PORT", "5432"),
		DBUser:               env("DB_USER", "postgres"),
		DBPassword:           env("DB_PASSWORD", ""),
		DBName:               env("DB_NAME", "agu"),
		DBSslMode:            env("DB_SSLMODE", "disable"),
		RedisAddr:            env("REDIS_ADDR", ""),
		RedisPassword:        env("REDIS_PASSWORD", ""),
		PredictionServiceURL: env("PREDICTION_SERVICE_URL", "http://localhost:5000"),
		PredictionSchedule:   env("PREDICTION_SCHEDULE", "0 0 5 * * *"),
	}

	if c.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if c.PredictionDays, err = envInt("PREDICTION_DAYS", 3); err != nil {
		return Config{}, err
	}
	if c.PredictionTimeout, err = envDuration("PREDICTION_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if c.FetchTimeout, err = envDuration("FETCH_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if c.CycleTimeout, err = envDuration("CYCLE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if c.DefaultFrequency, err = envFrequency("DEFAULT_PROVIDER_FREQUENCY", time.Hour); err != nil {
		return Config{}, err
	}
	return c, nil
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// envFrequency reads an ISO-8601 duration such as PT15M, like provider frequencies.
func envFrequency(key string, def time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	d, err := validation.ParseFrequency(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
