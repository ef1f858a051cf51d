package main

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = "30s"

// Config holds the probe settings read from the environment.
type Config struct {
	Endpoint string        `validate:"required,url"`
	Token    string        `validate:"required"`
	Timeout  time.Duration `validate:"gt=0"`
	LogLevel string        `validate:"oneof=trace debug info warn warning error"`
	LogFile  string
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file from the working directory when there is one.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	timeout, err := time.ParseDuration(getenv("EXCHANGE_TIMEOUT", defaultTimeout))
	if err != nil {
		return nil, errors.Wrap(err, "invalid EXCHANGE_TIMEOUT")
	}

	cfg := &Config{
		Endpoint: os.Getenv("EXCHANGE_ENDPOINT"),
		Token:    os.Getenv("EXCHANGE_TOKEN"),
		Timeout:  timeout,
		LogLevel: getenv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
