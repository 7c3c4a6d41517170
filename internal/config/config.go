package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rocjay1/card-advisor/internal/recommend"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Port        string
	CatalogPath string
	Thresholds  recommend.Thresholds

	TableServiceURL string
	ReportsTable    string
	BlobServiceURL  string
	BatchContainer  string
	QueueServiceURL string
	BatchQueue      string

	CommunicationEndpoint string
	SenderEmail           string
	ReportEmail           string
	ReportRetentionDays   int

	CORSAllowedOrigins []string
	RateLimitPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	defaults := recommend.DefaultThresholds()

	spend, err := getEnvAsDecimal("SPEND_THRESHOLD", defaults.SpendThreshold)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("FUNCTIONS_CUSTOMHANDLER_PORT", "8080"),
		CatalogPath: getEnv("CATALOG_PATH", ""),
		Thresholds: recommend.Thresholds{
			CategoryMinCount: getEnvAsInt("CATEGORY_MIN_COUNT", defaults.CategoryMinCount),
			CreditMinCount:   getEnvAsInt("CREDIT_MIN_COUNT", defaults.CreditMinCount),
			SpendThreshold:   spend,
			Limit:            getEnvAsInt("MAX_RECOMMENDATIONS", defaults.Limit),
		},

		TableServiceURL: getEnv("TABLE_SERVICE_URL", ""),
		ReportsTable:    getEnv("REPORTS_TABLE", "reports"),
		BlobServiceURL:  getEnv("BLOB_SERVICE_URL", ""),
		BatchContainer:  getEnv("BATCH_CONTAINER", "transaction-batches"),
		QueueServiceURL: getEnv("QUEUE_SERVICE_URL", ""),
		BatchQueue:      getEnv("BATCH_QUEUE", "analysis-queue"),

		CommunicationEndpoint: getEnv("COMMUNICATION_SERVICES_ENDPOINT", ""),
		SenderEmail:           getEnv("SENDER_EMAIL", ""),
		ReportEmail:           getEnv("REPORT_EMAIL", ""),
		ReportRetentionDays:   getEnvAsInt("REPORT_RETENTION_DAYS", 90),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configured values are usable
func (c *Config) Validate() error {
	if c.Thresholds.Limit < 1 {
		return fmt.Errorf("MAX_RECOMMENDATIONS must be at least 1")
	}
	if c.Thresholds.CategoryMinCount < 0 || c.Thresholds.CreditMinCount < 0 {
		return fmt.Errorf("CATEGORY_MIN_COUNT and CREDIT_MIN_COUNT must not be negative")
	}
	if c.ReportRetentionDays < 1 {
		return fmt.Errorf("REPORT_RETENTION_DAYS must be at least 1")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// BatchEnabled reports whether the storage services for batch analysis are configured.
func (c *Config) BatchEnabled() bool {
	return c.TableServiceURL != "" && c.BlobServiceURL != "" && c.QueueServiceURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, valueStr, err)
	}
	return value, nil
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
