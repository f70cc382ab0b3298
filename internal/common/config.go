package common

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Log    LogConfig
	OCR    OCRConfig
	LLM    LLMConfig
}

// ServerConfig holds transport configuration
type ServerConfig struct {
	HTTPAddr         string
	GRPCAddr         string // empty disables the gRPC health listener
	MaxUploadBytes   int64  // 0 = no limit
	CredentialHeader string
	ShutdownTimeout  time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" | "text"
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract      string
	Lang           string
	TessdataDir    string
	PSM            int
	OEM            int
	MaxConcurrency int   // 0 = unlimited
	MaxPixels      int64 // width*height cap checked before decoding
}

// LLMConfig holds chat-completion configuration. No API key lives here; each
// call authenticates with the caller's credential.
type LLMConfig struct {
	BaseURL            string
	OrgID              string
	Model              string
	Temperature        float32
	Timeout            time.Duration
	ValidateStructured bool
}

const (
	DefaultHTTPAddr         = ":8000"
	DefaultGRPCAddr         = ":9090"
	DefaultCredentialHeader = "X-OpenAI-API-Key"
	DefaultMaxUploadBytes   = 25 << 20
	DefaultModel            = "gpt-3.5-turbo"
	DefaultMaxImagePixels   = 178_956_970
	windowsTesseract        = `C:\Program Files\Tesseract-OCR\tesseract.exe`
)

// LoadDotEnv reads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(logger *slog.Logger, paths ...string) error {
	if logger == nil {
		logger = slog.Default()
	}
	err := godotenv.Load(paths...)
	if err == nil {
		logger.Debug("config.dotenv.loaded", "paths", paths)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("config.dotenv.missing", "hint", "using process environment")
		return nil
	}
	return NewAppError(KindConfig, "load .env", err)
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:         getEnv("HTTP_ADDR", DefaultHTTPAddr),
			GRPCAddr:         getEnvAllowEmpty("GRPC_ADDR", DefaultGRPCAddr),
			MaxUploadBytes:   getEnvAsInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
			CredentialHeader: getEnv("CREDENTIAL_HEADER", DefaultCredentialHeader),
			ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		OCR: OCRConfig{
			Tesseract:      getEnv("TESSERACT_CMD", defaultTesseract()),
			Lang:           getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:    getEnv("TESSDATA_PREFIX", ""),
			PSM:            getEnvAsInt("TESSERACT_PSM", 0),
			OEM:            getEnvAsInt("TESSERACT_OEM", 0),
			MaxConcurrency: getEnvAsInt("OCR_MAX_CONCURRENCY", 0),
			MaxPixels:      getEnvAsInt64("OCR_MAX_PIXELS", DefaultMaxImagePixels),
		},
		LLM: LLMConfig{
			BaseURL:            getEnv("OPENAI_BASE_URL", ""),
			OrgID:              getEnv("OPENAI_ORG_ID", ""),
			Model:              getEnv("OPENAI_MODEL", DefaultModel),
			Temperature:        getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:            getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			ValidateStructured: getEnvAsBool("VALIDATE_STRUCTURED", false),
		},
	}
}

func defaultTesseract() string {
	if runtime.GOOS == "windows" {
		return windowsTesseract
	}
	return "tesseract"
}

// SlogLevel maps Log.Level onto a slog level; unknown values fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes "unset" from "set to empty".
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
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

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("HTTP_ADDR", c.Server.HTTPAddr, Required)
	v.Field("CREDENTIAL_HEADER", c.Server.CredentialHeader, Required)
	v.Field("MAX_UPLOAD_BYTES", c.Server.MaxUploadBytes, NonNegative)
	v.Field("LOG_LEVEL", c.Log.Level, OneOf("debug", "info", "warn", "warning", "error"))
	v.Field("LOG_FORMAT", c.Log.Format, OneOf("json", "text"))
	v.Field("TESSERACT_CMD", c.OCR.Tesseract, Required)
	v.Field("TESSERACT_LANG", c.OCR.Lang, Required)
	v.Field("TESSERACT_PSM", c.OCR.PSM, NonNegative)
	v.Field("OCR_MAX_CONCURRENCY", c.OCR.MaxConcurrency, NonNegative)
	v.Field("OCR_MAX_PIXELS", c.OCR.MaxPixels, NonNegative)
	v.Field("OPENAI_MODEL", c.LLM.Model, Required)
	v.Field("OPENAI_TEMPERATURE", c.LLM.Temperature, NonNegative)
	if c.LLM.Timeout <= 0 {
		v.Field("OPENAI_TIMEOUT", c.LLM.Timeout.String(), func(name string, value interface{}) *ValidationError {
			return &ValidationError{Field: name, Value: value, Message: "must be positive"}
		})
	}
	return v.AsAppError(KindConfig)
}
