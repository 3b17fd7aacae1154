package config

import (
	"fmt"
	"os"
)

type Config struct {
	// Gemini API
	GeminiAPIKey       string
	GeminiAPIBaseURL   string
	GeminiVisionModel  string
	GeminiEnhanceModel string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Payments
	PaymentProvider    string
	PaymentSecretKey   string
	PaystackAPIBaseURL string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiAPIBaseURL:   getEnv("GEMINI_API_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/"),
		GeminiVisionModel:  getEnv("GEMINI_VISION_MODEL", "gemini-pro"),
		GeminiEnhanceModel: getEnv("GEMINI_ENHANCE_MODEL", "nano-banana-pro"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "glowups"),

		PaymentProvider:    getEnv("PAYMENT_PROVIDER", "paystack"),
		PaymentSecretKey:   getEnv("PAYMENT_SECRET_KEY", ""),
		PaystackAPIBaseURL: getEnv("PAYSTACK_API_BASE_URL", "https://api.paystack.co"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the keys the server cannot start without. The payment
// secret is deliberately not part of this check: a missing secret is
// reported as a failed-precondition at the unlock boundary instead of
// refusing to boot.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.PaymentProvider != "paystack" && c.PaymentProvider != "stripe" {
		return fmt.Errorf("PAYMENT_PROVIDER must be one of: paystack, stripe")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
