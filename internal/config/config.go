package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr  string
	BotToken  string
	JWTSecret string
	TokenTTL  time.Duration

	// SignInRatePerMinute limits sign-in attempts per client IP
	SignInRatePerMinute int

	ReconcileInterval time.Duration

	AutoCategorize    bool
	ConceptNetURL     string
	ConceptNetTimeout time.Duration

	Database DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	tokenTTL, err := getDuration("TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	reconcileInterval, err := getDuration("RECONCILE_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, err
	}
	conceptNetTimeout, err := getDuration("CONCEPTNET_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	signInRate, err := getInt("SIGNIN_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		BotToken:            os.Getenv("BOT_TOKEN"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		TokenTTL:            tokenTTL,
		SignInRatePerMinute: signInRate,
		ReconcileInterval:   reconcileInterval,
		AutoCategorize:      getBool("AUTO_CATEGORIZE", false),
		ConceptNetURL:       strings.TrimRight(getEnv("CONCEPTNET_URL", "https://api.conceptnet.io"), "/"),
		ConceptNetTimeout:   conceptNetTimeout,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordsprout"),
			User:     getEnv("DB_USER", "wordsprout"),
			Password: os.Getenv("DB_PASSWORD"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.SignInRatePerMinute <= 0 {
		return nil, fmt.Errorf("SIGNIN_RATE_PER_MINUTE must be positive")
	}
	if cfg.ReconcileInterval <= 0 {
		return nil, fmt.Errorf("RECONCILE_INTERVAL must be positive")
	}

	return cfg, nil
}

// BotEnabled reports whether the Telegram front-end should be started
func (c *Config) BotEnabled() bool {
	return c.BotToken != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
