package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joseph-ayodele/ecoscan/internal/llm"
)

type cliRunner struct{ calls int }

func (r *cliRunner) Run(_ context.Context, _ io.Reader, _ string, _ ...string) ([]byte, []byte, error) {
	r.calls++
	return []byte("MILK 1L $3.50\n"), nil, nil
}

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "receipt.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPromptCommand(t *testing.T) {
	out, err := runCLI(t, "prompt")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !strings.Contains(out, llm.PromptVersion) || !strings.Contains(out, llm.ExtractionPrompt) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestExtractCommand(t *testing.T) {
	var auth string
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","model":"gpt-3.5-turbo","choices":[{"index":0,"message":{"role":"assistant","content":" [] "},"finish_reason":"stop"}]}`)
	}))
	defer chat.Close()
	t.Setenv("OPENAI_BASE_URL", chat.URL)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "")

	r := &cliRunner{}
	runnerOverride = r
	t.Cleanup(func() { runnerOverride = nil })

	out, err := runCLI(t, "extract", "--image", writePNG(t), "--key", "tok-cli")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var env map[string]string
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if env["ocr_text"] != "MILK 1L $3.50\n" || env["structured_data"] != "[]" {
		t.Fatalf("envelope = %v", env)
	}
	if auth != "Bearer tok-cli" {
		t.Fatalf("Authorization = %q", auth)
	}
}

func TestExtractCommandWithoutCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "")
	r := &cliRunner{}
	runnerOverride = r
	t.Cleanup(func() { runnerOverride = nil })

	out, err := runCLI(t, "extract", "--image", writePNG(t))
	if err == nil {
		t.Fatal("expected an error without a credential")
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("expected error envelope, got:\n%s", out)
	}
	if r.calls != 0 {
		t.Fatalf("tesseract ran %d times without a credential", r.calls)
	}
}
