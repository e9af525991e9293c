package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBURL       string
	RabbitMQURL string
	R2          R2Config

	GoogleAPIKey string
	GeminiModel  string
	Classifier   string

	PDFEngine      string
	PageSeparator  string
	KeywordsFile   string
	DetectLanguage bool

	Workers     int
	MetricsPort string
	LogLevel    string
}

func loadConfig() Config {
	_ = godotenv.Load()
	return Config{
		DBURL:       os.Getenv("DB_URL"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		R2: R2Config{
			AccountID: os.Getenv("R2_ACCCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
		},

		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		Classifier:   envOr("CLASSIFIER", "rules"),

		PDFEngine:      envOr("PDF_ENGINE", "ledongthuc"),
		PageSeparator:  strings.ReplaceAll(os.Getenv("PAGE_SEPARATOR"), `\n`, "\n"),
		KeywordsFile:   os.Getenv("KEYWORDS_FILE"),
		DetectLanguage: envBool("DETECT_LANGUAGE", false),

		Workers:     envInt("WORKERS", 3),
		MetricsPort: envOr("METRICS_PORT", "9090"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
	}
}

// validateWorker reports every setting the queue worker cannot start without.
func (c Config) validateWorker() error {
	required := []struct {
		name  string
		value string
	}{
		{"DB_URL", c.DBURL},
		{"RABBITMQ_URL", c.RabbitMQURL},
		{"R2_ACCCOUNT_ID", c.R2.AccountID},
		{"R2_BUCKET", c.R2.Bucket},
		{"R2_ACCESS_KEY", c.R2.AccessKey},
		{"R2_SECRET_KEY", c.R2.SecretKey},
	}
	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("empty %s in environment", r.name))
		}
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("WORKERS must be positive, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
