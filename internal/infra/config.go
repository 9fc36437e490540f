package infra

import (
	"os"
	"strings"
)

type Config struct {
	Port        string
	Production  bool
	PostgresURL string

	JWTSecret string

	PaymentAPIKey        string
	PaymentWebhookSecret string
	PaymentBaseURL       string

	OpenAIAPIKey string

	AllowedOrigins []string
	AppBaseURL     string
}

func LoadConfig() Config {
	return Config{
		Port:        getEnv("PORT", "3000"),
		Production:  getEnv("APP_ENV", "development") == "production",
		PostgresURL: os.Getenv("POSTGRES_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		PaymentAPIKey:        os.Getenv("PAYMENT_SECRET_KEY"),
		PaymentWebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		PaymentBaseURL:       getEnv("PAYMENT_BASE_URL", "https://api.payments.example.com/v1"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),

		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
		AppBaseURL:     getEnv("APP_BASE_URL", "https://influencecontact.com"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
