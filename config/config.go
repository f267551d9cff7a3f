package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Search     SearchConfig
	Commission CommissionConfig
	Otp        OtpConfig
	SMTP       SMTPConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// SearchConfig holds the ranking engine knobs. Distances are in meters to
// match the scoring formulas.
type SearchConfig struct {
	RadiusMeters       float64 // geo candidate radius
	NearBonusMeters    float64 // below this distance the proximity bonus is the high value
	ProximityBonusNear float64
	ProximityBonusFar  float64
}

type CommissionConfig struct {
	Percentage float64 // default commission percentage applied to confirmed totals
}

type OtpConfig struct {
	Expiry         time.Duration
	ResendInterval time.Duration
	DailyLimit     int
	MaxAttempts    int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func Load() *Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8090"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_DSN", "taraas:taraas@tcp(localhost:3306)/taraas?charset=utf8mb4&parseTime=True&loc=UTC"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "taraas",
		},
		Search: SearchConfig{
			RadiusMeters:       50000,
			NearBonusMeters:    5000,
			ProximityBonusNear: 30,
			ProximityBonusFar:  10,
		},
		Commission: CommissionConfig{
			Percentage: getEnvFloat("COMMISSION_PERCENTAGE", 5.0),
		},
		Otp: OtpConfig{
			Expiry:         5 * time.Minute,
			ResendInterval: 60 * time.Second,
			DailyLimit:     10,
			MaxAttempts:    5,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@taraas.com"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
