package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/ecoscan/internal/llm"
)

// LLMAdapter exposes an llm.StructuredExtractor as Stage 2.
type LLMAdapter struct {
	x llm.StructuredExtractor
}

func NewLLMAdapter(x llm.StructuredExtractor, _ *slog.Logger) *LLMAdapter {
	return &LLMAdapter{x: x}
}

func (a *LLMAdapter) ExtractStructured(ctx context.Context, text, credential string) (StructuredResult, error) {
	start := time.Now()
	c, err := a.x.ExtractStructured(ctx, llm.ExtractRequest{OCRText: text, Credential: credential})
	return StructuredResult{
		Content:       c.Content,
		ModelName:     c.Model,
		FinishReason:  c.FinishReason,
		PromptVersion: c.PromptVersion,
		Duration:      time.Since(start),
	}, err
}
