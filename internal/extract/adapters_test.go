package extract

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/llm"
	"github.com/joseph-ayodele/ecoscan/internal/ocr"
)

type echoRunner struct{ out string }

func (r echoRunner) Run(_ context.Context, _ io.Reader, _ string, _ ...string) ([]byte, []byte, error) {
	return []byte(r.out), nil, nil
}

type stubLLM struct {
	got llm.ExtractRequest
	out llm.Completion
	err error
}

func (s *stubLLM) ExtractStructured(_ context.Context, req llm.ExtractRequest) (llm.Completion, error) {
	s.got = req
	return s.out, s.err
}

func TestOCRAdapter(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	a := NewOCRAdapter(ocr.NewExtractorWithRunner(ocr.Config{}, echoRunner{out: "MILK 1L $3.50"}, nil), nil)

	res, err := a.Extract(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Text != "MILK 1L $3.50" || res.Format != "png" || res.Width != 3 || res.Language != "eng" {
		t.Fatalf("res = %+v", res)
	}

	_, err = a.Extract(context.Background(), []byte("nope"))
	if !common.IsKind(err, common.KindImageDecode) {
		t.Fatalf("err = %v, want KindImageDecode", err)
	}
}

func TestLLMAdapter(t *testing.T) {
	s := &stubLLM{out: llm.Completion{Content: "[]", Model: "gpt-3.5-turbo", PromptVersion: llm.PromptVersion}}
	a := NewLLMAdapter(s, nil)

	res, err := a.ExtractStructured(context.Background(), "MILK", "tok-abc")
	if err != nil {
		t.Fatalf("ExtractStructured: %v", err)
	}
	if s.got.OCRText != "MILK" || s.got.Credential != "tok-abc" {
		t.Fatalf("request not forwarded: %+v", s.got)
	}
	if res.Content != "[]" || res.ModelName != "gpt-3.5-turbo" || res.PromptVersion != llm.PromptVersion {
		t.Fatalf("res = %+v", res)
	}
}
