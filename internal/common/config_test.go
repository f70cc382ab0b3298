package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "GRPC_ADDR", "MAX_UPLOAD_BYTES", "CREDENTIAL_HEADER", "OPENAI_MODEL", "OPENAI_TIMEOUT", "VALIDATE_STRUCTURED", "TESSERACT_LANG", "OCR_MAX_PIXELS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := LoadConfig()
	if cfg.Server.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Server.GRPCAddr != DefaultGRPCAddr {
		t.Errorf("GRPCAddr = %q", cfg.Server.GRPCAddr)
	}
	if cfg.Server.CredentialHeader != DefaultCredentialHeader {
		t.Errorf("CredentialHeader = %q", cfg.Server.CredentialHeader)
	}
	if cfg.Server.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d", cfg.Server.MaxUploadBytes)
	}
	if cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s", cfg.LLM.Timeout)
	}
	if cfg.LLM.ValidateStructured {
		t.Error("ValidateStructured should default to false")
	}
	if cfg.OCR.Lang != "eng" {
		t.Errorf("Lang = %q", cfg.OCR.Lang)
	}
	if cfg.OCR.MaxPixels != DefaultMaxImagePixels {
		t.Errorf("MaxPixels = %d", cfg.OCR.MaxPixels)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("GRPC_ADDR", "")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_TIMEOUT", "2s")
	t.Setenv("VALIDATE_STRUCTURED", "true")
	t.Setenv("OCR_MAX_CONCURRENCY", "3")
	t.Setenv("OPENAI_TEMPERATURE", "not-a-number")

	cfg := LoadConfig()
	if cfg.Server.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Server.GRPCAddr != "" {
		t.Errorf("explicitly empty GRPC_ADDR should disable gRPC, got %q", cfg.Server.GRPCAddr)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.Timeout != 2*time.Second {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if !cfg.LLM.ValidateStructured {
		t.Error("ValidateStructured should be true")
	}
	if cfg.OCR.MaxConcurrency != 3 {
		t.Errorf("MaxConcurrency = %d", cfg.OCR.MaxConcurrency)
	}
	if cfg.LLM.Temperature != 0 {
		t.Errorf("unparseable temperature should fall back to default, got %v", cfg.LLM.Temperature)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.OCR.Tesseract = ""
	cfg.Log.Level = "verbose"
	cfg.Server.MaxUploadBytes = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if KindOf(err) != KindConfig {
		t.Fatalf("KindOf = %v, want %v", KindOf(err), KindConfig)
	}
	for _, want := range []string{"TESSERACT_CMD", "LOG_LEVEL", "MAX_UPLOAD_BYTES"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ECOSCAN_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ECOSCAN_TEST_DOTENV", "")
	os.Unsetenv("ECOSCAN_TEST_DOTENV")

	if err := LoadDotEnv(nil, path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("ECOSCAN_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("ECOSCAN_TEST_DOTENV = %q", got)
	}

	if err := LoadDotEnv(nil, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing .env should not fail: %v", err)
	}
}
