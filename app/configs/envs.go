package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	Port          string
	AppEnv        string
	LogLevel      string
	DBDriver      string
	DBDSN         string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	AppAuthKey    string
	AppEncKey     string
	CSRFKey       string
	SessionMaxAge time.Duration
}

func (e ENV) Production() bool {
	return e.AppEnv == "production"
}

// LoadEnv reads .env when present and falls back to the process
// environment for everything else.
func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found")
	}

	return ENV{
		Port:          getEnv("APP_PORT", ":8080"),
		AppEnv:        getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBDSN:         os.Getenv("DB_DSN"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		AppAuthKey:    os.Getenv("APP_AUTH_KEY"),
		AppEncKey:     os.Getenv("APP_ENC_KEY"),
		CSRFKey:       os.Getenv("CSRF_KEY"),
		SessionMaxAge: time.Duration(getEnvInt("SESSION_MAX_AGE", 7*24*60*60)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}
