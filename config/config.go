package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Sqlite  SqliteConfig
	Kafka   KafkaConfig
	Webhook WebhookConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SqliteConfig struct {
	DSN          string
	MaxOpenConns int
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
	GroupID string
}

type WebhookConfig struct {
	Endpoint string
	Secret   string
	Timeout  time.Duration
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8080"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Sqlite: SqliteConfig{
			DSN:          getEnv("SQLITE_DSN", "stock.db"),
			MaxOpenConns: getEnvInt("SQLITE_MAX_OPEN_CONNS", 1),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_SCANS", "rfid.scans"),
			GroupID: getEnv("KAFKA_GROUP_SCANS", "stock-service"),
		},
		Webhook: WebhookConfig{
			Endpoint: getEnv("WEBHOOK_ENDPOINT", ""),
			Secret:   getEnv("WEBHOOK_SECRET", ""),
			Timeout:  time.Duration(getEnvInt("WEBHOOK_TIMEOUT_SECONDS", 5)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
