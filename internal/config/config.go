package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo = "mongo"
	StoreMySQL = "mysql"
)

type Config struct {
	AppPort        string
	TrustedProxies []string
	AllowedOrigins []string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DbHost        string
	DbPort        string
	DbUser        string
	DbPassword    string
	DbName        string
	DbParams      string

	JWTSecret      string
	JWTTTL         time.Duration
	GoogleClientID string

	Timezone       string
	SweepSchedule  string
	DigestSchedule string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	TelegramBotToken string
	TelegramChatID   int64
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		TrustedProxies: parseList(os.Getenv("TRUSTED_PROXIES")),
		AllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "taskease"),
		DbHost:        getEnv("MYSQL_HOST", "db"),
		DbPort:        getEnv("MYSQL_PORT", "3306"),
		DbUser:        getEnv("MYSQL_USER", "taskease"),
		DbPassword:    getEnv("MYSQL_PASSWORD", "taskease"),
		DbName:        getEnv("MYSQL_DATABASE", "taskease"),
		DbParams:      getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true&loc=UTC"),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTTTL:         getDuration("JWT_TTL", 7*24*time.Hour),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		Timezone:       getEnv("TIMEZONE", "Asia/Kolkata"),
		SweepSchedule:  getEnv("SWEEP_SCHEDULE", "5 19 * * *"),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 20 * * *"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   int64(getInt("TELEGRAM_CHAT_ID", 0)),
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
