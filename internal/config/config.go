package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Redis      RedisConfig
	Attendance AttendanceConfig
	Jobs       JobsConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
}

// RedisConfig is optional. An empty Addr keeps locks and the token
// blacklist in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AttendanceConfig struct {
	ViolationLimit             int
	EmergencyAutoCheckoutAfter time.Duration
	PunchLockTTL               time.Duration
	DefaultLocation            string
	ServerRoomLocation         string
}

type JobsConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	StaleAfter   time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "empatt"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: autoMigrate,
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "UTC"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "https://empatt.vercel.app,http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance rules
	violationLimit, err := strconv.Atoi(getEnv("ATTENDANCE_VIOLATION_LIMIT", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_VIOLATION_LIMIT: %w", err)
	}
	autoCheckoutAfter, err := time.ParseDuration(getEnv("EMERGENCY_AUTO_CHECKOUT_AFTER", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMERGENCY_AUTO_CHECKOUT_AFTER: %w", err)
	}
	lockTTL, err := time.ParseDuration(getEnv("PUNCH_LOCK_TTL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_LOCK_TTL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		ViolationLimit:             violationLimit,
		EmergencyAutoCheckoutAfter: autoCheckoutAfter,
		PunchLockTTL:               lockTTL,
		DefaultLocation:            getEnv("DEFAULT_LOCATION", "Unknown"),
		ServerRoomLocation:         getEnv("SERVER_ROOM_LOCATION", "Server Room"),
	}

	// Background jobs
	pollInterval, err := time.ParseDuration(getEnv("JOB_POLL_INTERVAL", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_POLL_INTERVAL: %w", err)
	}
	batchSize, err := strconv.Atoi(getEnv("JOB_BATCH_SIZE", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_BATCH_SIZE: %w", err)
	}
	maxAttempts, err := strconv.Atoi(getEnv("JOB_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_MAX_ATTEMPTS: %w", err)
	}
	staleAfter, err := time.ParseDuration(getEnv("JOB_STALE_AFTER", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_STALE_AFTER: %w", err)
	}

	config.Jobs = JobsConfig{
		PollInterval: pollInterval,
		BatchSize:    batchSize,
		MaxAttempts:  maxAttempts,
		StaleAfter:   staleAfter,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Attendance.ViolationLimit < 1 {
		return fmt.Errorf("ATTENDANCE_VIOLATION_LIMIT must be at least 1")
	}
	if c.Jobs.PollInterval <= 0 {
		return fmt.Errorf("JOB_POLL_INTERVAL must be positive")
	}
	if c.Jobs.BatchSize < 1 || c.Jobs.MaxAttempts < 1 {
		return fmt.Errorf("JOB_BATCH_SIZE and JOB_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the time zone used for calendar date and month boundaries.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
