package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/extract"
)

// ImageConfidenceThreshold is the heuristic score under which OCR output is
// flagged in logs as unlikely to be a receipt.
const ImageConfidenceThreshold = 0.4

type OCRStage struct {
	TextExtractor extract.TextExtractor
	Logger        *slog.Logger
}

func NewOCRStage(tx extract.TextExtractor, logger *slog.Logger) *OCRStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRStage{TextExtractor: tx, Logger: logger}
}

// Run extracts text from one uploaded image. The text is returned exactly as
// the engine produced it.
func (p *OCRStage) Run(ctx context.Context, image []byte) (extract.TextExtractionResult, error) {
	log := common.LoggerFromContext(ctx, p.Logger)

	res, err := p.TextExtractor.Extract(ctx, image)
	if err != nil {
		if common.KindOf(err) == common.KindUnknown {
			err = common.NewAppError(common.KindOCREngine, "text extraction failed", err)
		}
		return extract.TextExtractionResult{}, err
	}

	if res.Confidence > 0 && res.Confidence < ImageConfidenceThreshold {
		log.Warn("pipeline.ocr.low_confidence",
			"confidence", res.Confidence,
			"text_len", len(res.Text),
			"hint", "image may not be a receipt; continuing")
	}
	return res, nil
}
