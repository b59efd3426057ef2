package config

import (
	"errors"
	"os"
)

type Config struct {
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	JWTSecret string
	Port      string
	Env       string

	QRDir string

	// Brevo transactional email. An empty key disables sending.
	BrevoKey    string
	SenderName  string
	SenderEmail string

	LogLevel string
}

func NewConfigFromEnv() (*Config, error) {
	cfg := &Config{
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPass:      getenv("DB_PASSWORD", "postgres"),
		DBName:      getenv("DB_NAME", "eventhub"),
		DBSSLMode:   getenv("DB_SSLMODE", "disable"),
		JWTSecret:   getenv("JWT_SECRET", ""),
		Port:        getenv("PORT", "3000"),
		Env:         getenv("ENV", "development"),
		QRDir:       getenv("QR_DIR", "./uploads/qrcodes"),
		BrevoKey:    getenv("BREVO_KEY", ""),
		SenderName:  getenv("SENDER_NAME", "EventHub"),
		SenderEmail: getenv("SENDER_EMAIL", "noreply@eventhub.local"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
