package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	Port                 string
	DatabaseURL          string
	LocalTimezone        *time.Location
	JWTSecret            string
	ClientURL            string
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPassword         string
	EmailFrom            string
	OpenAIAPIKey         string
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	AppointmentHour      int
	AgentAPIBase         string
	AgentToken           string
}

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")
	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		Port:                 getenvDefault("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		LocalTimezone:        location,
		JWTSecret:            getenvDefault("JWT_SECRET", "healthnudge-dev-secret"),
		ClientURL:            getenvDefault("CLIENT_URL", "http://localhost:5173"),
		SMTPHost:             os.Getenv("EMAIL_HOST"),
		SMTPPort:             ParseIntEnv("EMAIL_PORT", 587),
		SMTPUser:             os.Getenv("EMAIL_USER"),
		SMTPPassword:         os.Getenv("EMAIL_PASS"),
		EmailFrom:            getenvDefault("EMAIL_FROM", "Health Tracker <noreply@healthtracker.ai>"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		AppointmentHour:      ParseIntEnv("APPOINTMENT_REMINDER_HOUR", 8),
		AgentAPIBase:         os.Getenv("AGENT_API_BASE"),
		AgentToken:           os.Getenv("AGENT_TOKEN"),
	}
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// ParseIntEnv returns the integer value for an environment variable or the provided default.
func ParseIntEnv(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as int: %v", key, value, err)
		return def
	}
	return parsed
}
