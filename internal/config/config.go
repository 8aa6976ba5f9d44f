package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Debug          bool
	FrontendOrigin string

	// Firebase / Firestore
	FirebaseCredentials string
	FirebaseProjectID   string

	// MySQL billing ledger
	DSN string

	// Redis cache
	RedisURL string

	// Gemini
	GeminiAPIKey   string
	GeminiFlash    string
	GeminiPro      string
	GeminiDisabled bool

	// PayPal
	PayPalClientID      string
	PayPalSecret        string
	PayPalAPIBase       string
	PayPalAllowSimulate bool
	PremiumPrice        string

	// Usage ledger
	UsageLimit    int
	UsageFailOpen bool

	// Scripture source
	ScriptureBaseURL string
}

func Load() *Config {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          getBool("DEBUG", false),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "*"),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),

		DSN:      getEnv("DSN", "sanctify:sanctifypassword@tcp(localhost:3306)/sanctify?parseTime=true"),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiFlash:    getEnv("GEMINI_FLASH_MODEL", "gemini-2.5-flash"),
		GeminiPro:      getEnv("GEMINI_PRO_MODEL", "gemini-2.5-pro"),
		GeminiDisabled: getBool("GEMINI_DISABLED", false),

		PayPalClientID:      getEnv("PAYPAL_CLIENT_ID", ""),
		PayPalSecret:        getEnv("PAYPAL_SECRET_KEY", ""),
		PayPalAPIBase:       getEnv("PAYPAL_API_BASE", "https://api-m.sandbox.paypal.com"),
		PayPalAllowSimulate: getBool("PAYPAL_ALLOW_SIMULATE", false),
		PremiumPrice:        getEnv("PREMIUM_PRICE", "9.99"),

		UsageLimit:    getInt("USAGE_LIMIT", 3),
		UsageFailOpen: getBool("USAGE_FAIL_OPEN", true),

		ScriptureBaseURL: getEnv("SCRIPTURE_BASE_URL", "https://bolls.life"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
