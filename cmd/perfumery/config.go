package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	endpoint        string
	dsn             string
	dataFile        string
	logLevel        string
	env             string
	location        *time.Location
	amqpURL         string
	allowedOrigins  []string
	openAIKey       string
	openAIModel     string
	shutdownTimeout time.Duration
}

// NewConfig собирает конфигурацию из флагов и переменных окружения.
// Переменные окружения имеют приоритет. Файл .env, если есть, загружается первым
// и не перекрывает уже заданные переменные.
func NewConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("ошибка чтения .env: %w", err)
	}

	var (
		endpoint string
		dsn      string
		timezone string
	)

	flag.StringVar(&endpoint, "a", "localhost:8090", "address and port to run server")
	flag.StringVar(&dsn, "d", "", "data source name for database connection")
	flag.StringVar(&timezone, "tz", "Local", "reference timezone for daily statistics and date filters")
	flag.Parse()

	if address := os.Getenv("RUN_ADDRESS"); address != "" {
		endpoint = address
	}

	if d := os.Getenv("DATABASE_URI"); d != "" {
		dsn = d
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		timezone = tz
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return Config{}, fmt.Errorf("неизвестный часовой пояс %q: %w", timezone, err)
	}

	shutdownTimeout := 10 * time.Second
	if s := os.Getenv("SHUTDOWN_TIMEOUT"); s != "" {
		if shutdownTimeout, err = time.ParseDuration(s); err != nil {
			return Config{}, fmt.Errorf("некорректный SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	allowedOrigins := []string{"*"}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	}

	return Config{
		endpoint:        endpoint,
		dsn:             dsn,
		dataFile:        getEnv("DATA_FILE", "delux-data.json"),
		logLevel:        getEnv("LOG_LEVEL", "error"),
		env:             getEnv("ENV", "production"),
		location:        location,
		amqpURL:         os.Getenv("AMQP_URL"),
		allowedOrigins:  allowedOrigins,
		openAIKey:       os.Getenv("OPENAI_API_KEY"),
		openAIModel:     getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		shutdownTimeout: shutdownTimeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
