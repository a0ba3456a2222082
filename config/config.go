package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cmdbot/core/log"
)

const (
	DefaultRatesAPIURL    = "https://www.gaitameonline.com/rateaj/getrate"
	DefaultHandlerTimeout = 5 * time.Second
)

type AlertConfig struct {
	WebhookURL string
	LogsURL    string
}

// IsConfigured returns true if alerts can be delivered
func (c AlertConfig) IsConfigured() bool {
	return c.WebhookURL != ""
}

type AppConfig struct {
	// SharedSecret is the decoded HMAC key. Never log it.
	SharedSecret []byte

	Port               string
	WebhookPath        string
	RatesAPIURL        string
	HandlerTimeout     time.Duration
	Environment        string
	LogLevel           string
	LogFile            string
	CORSAllowedOrigins string
	CatalogFile        string

	AlertConfig AlertConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("⚠️ Could not load .env file, continuing with system env vars")
	}

	encodedSecret, err := getEnvRequired("SHARED_SECRET")
	if err != nil {
		return nil, err
	}

	secret, err := DecodeSecret(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("SHARED_SECRET: %w", err)
	}

	handlerTimeout, err := getEnvDuration("HANDLER_TIMEOUT", DefaultHandlerTimeout)
	if err != nil {
		return nil, err
	}

	webhookPath := getEnvWithDefault("WEBHOOK_PATH", "/webhook")
	if !strings.HasPrefix(webhookPath, "/") {
		return nil, fmt.Errorf("WEBHOOK_PATH must start with /, got %q", webhookPath)
	}

	config := &AppConfig{
		SharedSecret:       secret,
		Port:               getEnvWithDefault("PORT", "8080"),
		WebhookPath:        webhookPath,
		RatesAPIURL:        getEnvWithDefault("RATES_API_URL", DefaultRatesAPIURL),
		HandlerTimeout:     handlerTimeout,
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		LogFile:            os.Getenv("LOG_FILE"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		CatalogFile:        os.Getenv("CATALOG_FILE"),

		AlertConfig: AlertConfig{
			WebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
			LogsURL:    os.Getenv("SERVER_LOGS_URL"),
		},
	}

	if config.AlertConfig.IsConfigured() {
		log.Info("✅ Slack error alerts configured")
	} else {
		log.Info("⚠️ Slack error alerts not configured - errors will only be logged")
	}

	return config, nil
}

// DecodeSecret decodes a base64 shared secret. Standard and URL alphabets
// are accepted, with or without padding.
func DecodeSecret(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, fmt.Errorf("secret is empty")
	}

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	for _, enc := range encodings {
		if secret, err := enc.DecodeString(encoded); err == nil && len(secret) > 0 {
			return secret, nil
		}
	}
	return nil, fmt.Errorf("secret is not valid base64")
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}
