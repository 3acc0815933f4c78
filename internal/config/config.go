package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	ServerPort     string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBConnTimeout  time.Duration
	MigrationsPath string
	JWTSecret      string
	CORSOrigin     string
	GeminiBaseURL  string
	GeminiAPIKey   string
	GeminiModel    string
	GeminiTimeout  time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	return &Config{
		Env:            getEnv("APP_ENV", "dev"),
		ServerPort:     getEnv("SERVER_PORT", "8000"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "taskman_user"),
		DBPassword:     getEnv("DB_PASSWORD", "taskman_pass"),
		DBName:         getEnv("DB_NAME", "taskman_db"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBConnTimeout:  getEnvDuration("DB_CONN_TIMEOUT", 5*time.Second),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),
		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-pro"),
		GeminiTimeout:  getEnvDuration("GEMINI_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
