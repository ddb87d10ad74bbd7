package common

import (
	"os"
	"strconv"
)

// Config holds all extraction-engine configuration
type Config struct {
	Extraction ExtractionConfig
	Export     ExportConfig
}

// ExtractionConfig holds strategy and source-handling configuration
type ExtractionConfig struct {
	// MinConfidence is the floor below which a ranked strategy is still run
	// but its result is flagged in audit logs.
	MinConfidence float64
	// MaxDocumentBytes caps how much of a source file is read into memory.
	MaxDocumentBytes int64
	// OCRMinConfidence marks OCR payloads below this as low-confidence in logs.
	OCRMinConfidence float64
}

// ExportConfig holds report-generation configuration
type ExportConfig struct {
	SheetName string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			MinConfidence:    getEnvAsFloat64("EXTRACT_MIN_CONFIDENCE", 0.5),
			MaxDocumentBytes: getEnvAsInt64("EXTRACT_MAX_DOCUMENT_BYTES", 16<<20),
			OCRMinConfidence: getEnvAsFloat64("OCR_MIN_CONFIDENCE", 0.4),
		},
		Export: ExportConfig{
			SheetName: getEnv("EXPORT_SHEET_NAME", "Reconciliation"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Extraction.MinConfidence < 0 || c.Extraction.MinConfidence > 1 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MIN_CONFIDENCE must be in [0,1]", ErrInvalidInput)
	}
	if c.Extraction.MaxDocumentBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MAX_DOCUMENT_BYTES must be positive", ErrInvalidInput)
	}
	if c.Export.SheetName == "" {
		return NewAppError("CONFIG_ERROR", "EXPORT_SHEET_NAME is required", ErrInvalidInput)
	}
	return nil
}
