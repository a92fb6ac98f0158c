package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIPort  string
	LogLevel string

	MaxBatchSize        int
	AsyncThreshold      int
	ConfidenceThreshold float64
	EarlyExitConfidence float64
	PipelineVersion     string

	MaxFileSizeMB     int
	AllowedExtensions []string
	AllowedAPIKeys    []string

	WorkerConcurrency      int
	DocumentTimeoutSeconds int

	RulesPath string

	TesseractBin      string
	TesseractLanguage string
	TesseractPSM      int

	UploadRateLimitRPS   float64
	UploadRateLimitBurst int
	MaxConcurrentUploads int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		MaxBatchSize:        mustEnvInt("MAX_BATCH_SIZE", 50),
		AsyncThreshold:      mustEnvInt("ASYNC_THRESHOLD", 10),
		ConfidenceThreshold: mustEnvFloat("CONFIDENCE_THRESHOLD", 0.65),
		EarlyExitConfidence: mustEnvFloat("EARLY_EXIT_CONFIDENCE", 0.95),
		PipelineVersion:     mustEnv("PIPELINE_VERSION", "v1.0.0"),

		MaxFileSizeMB:     mustEnvInt("MAX_FILE_SIZE_MB", 10),
		AllowedExtensions: mustEnvCSV("ALLOWED_EXTENSIONS", "pdf,docx,xlsx,csv,txt,png,jpg,jpeg,tiff"),
		AllowedAPIKeys:    mustEnvCSV("ALLOWED_API_KEYS", ""),

		WorkerConcurrency:      mustEnvInt("WORKER_CONCURRENCY", 4),
		DocumentTimeoutSeconds: mustEnvInt("DOCUMENT_TIMEOUT_SECONDS", 300),

		RulesPath: mustEnv("RULES_PATH", ""),

		TesseractBin:      mustEnv("TESSERACT_BIN", "tesseract"),
		TesseractLanguage: mustEnv("TESSERACT_LANGUAGE", "eng"),
		TesseractPSM:      mustEnvInt("TESSERACT_PSM", 6),

		UploadRateLimitRPS:   mustEnvFloat("UPLOAD_RATE_LIMIT_RPS", 0),
		UploadRateLimitBurst: mustEnvInt("UPLOAD_RATE_LIMIT_BURST", 10),
		MaxConcurrentUploads: mustEnvInt("MAX_CONCURRENT_UPLOADS", 0),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
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

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvCSV(key, fallback string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
