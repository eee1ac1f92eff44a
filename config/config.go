package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	Telegram TelegramConfig
	Stock    StockConfig
	// AutoMigrate applies embedded migrations on startup.
	AutoMigrate bool
}

type DBConfig struct {
	URL      string // DATABASE_URL; takes precedence over the fields below
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type HTTPConfig struct {
	Addr     string
	LogLevel string
}

type TelegramConfig struct {
	Token  string // bot token for new-order notifications; empty disables them
	ChatID int64
}

type StockConfig struct {
	LowThreshold int
}

// ConnString returns the pgx connection string.
func (c DBConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Database,
	)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	chatID, err := getEnvInt64("TELEGRAM_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}
	threshold, err := getEnvInt("LOW_STOCK_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}

	return &Config{
		DB: DBConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "restaurante"),
		},
		HTTP: HTTPConfig{
			Addr:     getEnv("HTTP_ADDR", ":8080"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Telegram: TelegramConfig{
			Token:  getEnv("TELEGRAM_TOKEN", ""),
			ChatID: chatID,
		},
		Stock: StockConfig{
			LowThreshold: threshold,
		},
		AutoMigrate: isTrue(os.Getenv("AUTO_MIGRATE")),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// isTrue accepts "1" or "true" (any case).
func isTrue(v string) bool {
	v = strings.TrimSpace(v)
	return v == "1" || strings.EqualFold(v, "true")
}
