package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/ecoscan/internal/ocr"
)

type OCRAdapter struct {
	e *ocr.Extractor
}

func NewOCRAdapter(e *ocr.Extractor, _ *slog.Logger) *OCRAdapter {
	return &OCRAdapter{e: e}
}

func (a *OCRAdapter) Extract(ctx context.Context, image []byte) (TextExtractionResult, error) {
	r, err := a.e.Extract(ctx, image)
	return TextExtractionResult{
		Text:       r.Text,
		Format:     r.Format,
		Width:      r.Width,
		Height:     r.Height,
		Language:   r.Language,
		Duration:   r.Duration,
		Confidence: r.Confidence,
	}, err
}
