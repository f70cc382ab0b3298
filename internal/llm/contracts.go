package llm

import "context"

// ExtractRequest is one structured-extraction call. Credential authenticates
// this call only and must never be logged.
type ExtractRequest struct {
	OCRText    string
	Credential string
}

// Completion is the model's reply, passed through as an opaque string.
type Completion struct {
	Content       string // first choice, surrounding whitespace trimmed
	Model         string
	FinishReason  string
	PromptVersion string
	TotalTokens   int
}

// StructuredExtractor is the interface the pipeline depends on.
type StructuredExtractor interface {
	ExtractStructured(ctx context.Context, req ExtractRequest) (Completion, error)
}
