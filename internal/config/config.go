package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	MongoURI    string
	DBName      string

	JWTSecret           string
	JWTExpiresIn        time.Duration
	JWTCookieExpiryDays int

	EmailHost     string
	EmailPort     int
	EmailUsername string
	EmailPassword string
	EmailFrom     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-tours"),

		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		JWTExpiresIn:        getEnvDuration("JWT_EXPIRES_IN", 72*time.Hour),
		JWTCookieExpiryDays: getEnvInt("JWT_COOKIE_EXPIRES_DAYS", 90),

		EmailHost:     getEnv("EMAIL_HOST", "localhost"),
		EmailPort:     getEnvInt("EMAIL_PORT", 25),
		EmailUsername: getEnv("EMAIL_USERNAME", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),
		EmailFrom:     getEnv("EMAIL_FROM", "Go Tours <noreply@go-tours.io>"),
	}, nil
}

// IsDevelopment reports whether verbose error responses are allowed.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
