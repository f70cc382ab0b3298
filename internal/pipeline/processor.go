package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/extract"
	"github.com/joseph-ayodele/ecoscan/internal/llm"
)

// Request is one upload to process. Credential is used for the LLM call only.
type Request struct {
	Image      []byte
	Credential string
}

// Result carries both stage outputs. OCRText and StructuredData are what the
// boundary returns; the rest is diagnostics.
type Result struct {
	OCRText        string
	StructuredData string

	OCR        extract.TextExtractionResult
	Structured extract.StructuredResult
	Validation *llm.ValidationReport
	Duration   time.Duration
}

// Processor coordinates OCR (text extract) then LLM parse (structured data).
type Processor struct {
	Logger *slog.Logger
	OCR    *OCRStage
	Parse  *ParseStage
}

func NewProcessor(logger *slog.Logger, ocr *OCRStage, parse *ParseStage) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, OCR: ocr, Parse: parse}
}

// Process runs OCR and then the LLM parse, stopping at the first failure.
// Each stage runs at most once. Errors are *common.AppError values tagged
// with their Kind.
func (p *Processor) Process(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	log := common.LoggerFromContext(ctx, p.Logger)

	if strings.TrimSpace(req.Credential) == "" {
		return Result{}, common.NewAppError(common.KindInvalidRequest, "credential is required", common.ErrInvalidInput)
	}

	// 1) OCR stage
	ocrRes, err := p.OCR.Run(ctx, req.Image)
	if err != nil {
		log.Error("pipeline.ocr.failed", "kind", common.KindOf(err).String(), "err", err)
		return Result{}, err
	}
	log.Info("pipeline.ocr.ok",
		"format", ocrRes.Format,
		"text_len", len(ocrRes.Text),
		"confidence", ocrRes.Confidence,
	)

	// 2) LLM parse stage
	parsed, err := p.Parse.Run(ctx, ocrRes.Text, req.Credential)
	if err != nil {
		log.Error("pipeline.parse.failed", "kind", common.KindOf(err).String(), "err", err)
		return Result{}, err
	}

	res := Result{
		OCRText:        ocrRes.Text,
		StructuredData: parsed.Structured.Content,
		OCR:            ocrRes,
		Structured:     parsed.Structured,
		Validation:     parsed.Validation,
		Duration:       time.Since(start),
	}
	log.Info("pipeline.ok",
		"model", res.Structured.ModelName,
		"structured_len", len(res.StructuredData),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
