package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort    string
	AppEnv     string
	AppBaseURL string // public URL used in outbound email links

	LogLevel  string
	LogFormat string // "json" or "console"

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	DigestHourUTC        int // hour of day (UTC) the daily digest runs
	DeadlineReminderDays int // SMS reminders go out for deadlines due within this many days

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each collection.
type DynamoTables struct {
	Users             string
	Invoices          string
	Notifications     string
	Stores            string
	DeletedStores     string
	Deadlines         string
	Announcements     string
	Settings          string
	InvoiceCategories string
	InvoiceLogTotals  string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "5140"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppBaseURL: getEnv("APP_BASE_URL", "https://pac-pro.example.com"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Users:             getEnv("DYNAMO_TABLE_USERS", "users"),
			Invoices:          getEnv("DYNAMO_TABLE_INVOICES", "invoices"),
			Notifications:     getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Stores:            getEnv("DYNAMO_TABLE_STORES", "stores"),
			DeletedStores:     getEnv("DYNAMO_TABLE_DELETED_STORES", "deleted_stores"),
			Deadlines:         getEnv("DYNAMO_TABLE_DEADLINES", "deadlines"),
			Announcements:     getEnv("DYNAMO_TABLE_ANNOUNCEMENTS", "announcements"),
			Settings:          getEnv("DYNAMO_TABLE_SETTINGS", "settings"),
			InvoiceCategories: getEnv("DYNAMO_TABLE_INVOICE_CATEGORIES", "invoice_categories"),
			InvoiceLogTotals:  getEnv("DYNAMO_TABLE_INVOICE_LOG_TOTALS", "invoice_log_totals"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "pacpro-invoice-images"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@pac-pro.example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		DigestHourUTC:        getEnvInt("DIGEST_HOUR_UTC", 7),
		DeadlineReminderDays: getEnvInt("DEADLINE_REMINDER_DAYS", 3),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
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
