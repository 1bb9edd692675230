package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DevJWTSecret is used when JWT_SECRET is unset. It is only acceptable outside release mode.
const DevJWTSecret = "dev_secret"

const (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Config struct {
	AppPort        string
	AppMode        string
	CORSOrigin     string
	BodyLimitBytes int64

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string

	MigrationsDir string

	JWTSecret      string
	JWTExpiryHours int

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:        getEnv("PORT", "4000"),
		AppMode:        getEnv("APP_MODE", DebugMode),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
		BodyLimitBytes: int64(getEnvAsInt("BODY_LIMIT_BYTES", 1<<20)),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "bilim_chat"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		JWTSecret:      getEnv("JWT_SECRET", DevJWTSecret),
		JWTExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 7*24),
		RedisHost:      getEnv("REDIS_HOST", ""),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
	}
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.AppMode == ReleaseMode && c.UsesDevSecret() {
		return errors.New("JWT_SECRET must be set in release mode")
	}
	if c.JWTExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive, got %d", c.JWTExpiryHours)
	}
	if c.BodyLimitBytes <= 0 {
		return fmt.Errorf("BODY_LIMIT_BYTES must be positive, got %d", c.BodyLimitBytes)
	}
	return nil
}

func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
