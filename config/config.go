package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// DefaultOTPTTL is how long a verification code stays usable.
	DefaultOTPTTL = 10 * time.Minute
	// DefaultOTPMaxAttempts is the number of wrong codes tolerated per issued code.
	DefaultOTPMaxAttempts = 3
	// DefaultReminderSchedule fires the reminder sweep every day at 08:00.
	DefaultReminderSchedule = "0 8 * * *"
	// DefaultReminderWindowDays is the calendar-day lookahead of the reminder sweep.
	DefaultReminderWindowDays = 2
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	Log  LogConfig
	Mail MailConfig

	OTPTTL         time.Duration
	OTPMaxAttempts int

	ReminderSchedule   string
	ReminderWindowDays int
	ReminderLocation   *time.Location

	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
}

// LogConfig controls the optional rotating log file
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// MailConfig selects and configures the outbound mail transport
type MailConfig struct {
	Transport      string
	SendGridAPIKey string
	FromName       string
	FromAddress    string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPTLS        bool
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the real environment wins anyway
	_ = godotenv.Load()

	c := &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: getEnv("DB_NAME", "TrainingCalendarDB"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         getEnv("PORT", "5000"),
		Env:          getEnv("ENV", "local"),
		Log: LogConfig{
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
		Mail: MailConfig{
			Transport:      strings.ToLower(getEnv("MAIL_TRANSPORT", "sendgrid")),
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			FromName:       getEnv("MAIL_FROM_NAME", "Training Calendar System"),
			FromAddress:    getEnv("MAIL_FROM_ADDRESS", "no-reply@trainingcalendar.com"),
			SMTPHost:       os.Getenv("SMTP_HOST"),
			SMTPPort:       getEnvInt("SMTP_PORT", 587),
			SMTPUsername:   os.Getenv("SMTP_USERNAME"),
			SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
			SMTPTLS:        getEnvBool("SMTP_TLS", true),
		},
		OTPTTL:             time.Duration(getEnvPositiveInt("OTP_TTL_MINUTES", int(DefaultOTPTTL/time.Minute))) * time.Minute,
		OTPMaxAttempts:     getEnvPositiveInt("OTP_MAX_ATTEMPTS", DefaultOTPMaxAttempts),
		ReminderSchedule:   getEnv("REMINDER_SCHEDULE", DefaultReminderSchedule),
		ReminderWindowDays: getEnvPositiveInt("REMINDER_WINDOW_DAYS", DefaultReminderWindowDays),
		ReminderLocation:   getEnvLocation("REMINDER_TIMEZONE", time.UTC),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 5),
		RequestTimeout:     time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(c)
	if err != nil {
		logger = zap.NewExample()
		logger.Warn("falling back to example logger", zap.Error(err))
	}
	_ = zap.ReplaceGlobals(logger)

	return c
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getEnvPositiveInt treats zero and negative values like unset ones
func getEnvPositiveInt(key string, fallback int) int {
	if v := getEnvInt(key, fallback); v > 0 {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvLocation(key string, fallback *time.Location) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
