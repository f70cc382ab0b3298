package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: image bytes -> text.
type TextExtractor interface {
	Extract(ctx context.Context, image []byte) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Format     string // "png" | "jpeg" | ...
	Width      int
	Height     int
	Language   string
	Duration   time.Duration
	Confidence float32
}

// StructuredExtractor is Stage 2: text -> structured recycling data (LLM).
type StructuredExtractor interface {
	ExtractStructured(ctx context.Context, text, credential string) (StructuredResult, error)
}

type StructuredResult struct {
	// Raw model output, trimmed, otherwise untouched.
	Content       string
	ModelName     string
	FinishReason  string
	PromptVersion string
	Duration      time.Duration
}
