package config

import (
	"os"
	"strconv"
	"time"
)

// App holds the environment-driven settings for the API server and the
// background alert scanner. Load once at startup, after godotenv.
type App struct {
	DatabaseURL  string
	Port         string
	JWTSecret    string
	DashboardURL string

	ScanEnabled      bool
	ScanInterval     time.Duration
	ScanStartupDelay time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	TemplateDir  string
}

// Load reads the configuration from environment variables, applying
// defaults for everything except credentials.
func Load() App {
	return App{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         getEnv("PORT", "8080"),
		JWTSecret:    getEnv("JWT_SECRET", "your-secret-key"),
		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:3000"),

		ScanEnabled:      getEnvBool("SCAN_ENABLED", true),
		ScanInterval:     getEnvDuration("SCAN_INTERVAL", 5*time.Minute),
		ScanStartupDelay: getEnvDuration("SCAN_STARTUP_DELAY", 15*time.Second),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "alerts@plantmon.local"),
		TemplateDir:  getEnv("TEMPLATE_DIR", "templates"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
