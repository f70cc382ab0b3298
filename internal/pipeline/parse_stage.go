package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/extract"
	"github.com/joseph-ayodele/ecoscan/internal/llm"
)

// Config holds behavior flags for the parse stage.
type Config struct {
	// ValidateStructured checks model output against the records schema and
	// reports the outcome. The output itself is never altered.
	ValidateStructured bool
}

type ParseStage struct {
	Logger    *slog.Logger
	Cfg       Config
	Extractor extract.StructuredExtractor
}

func NewParseStage(logger *slog.Logger, cfg Config, se extract.StructuredExtractor) *ParseStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseStage{Logger: logger, Cfg: cfg, Extractor: se}
}

type ParseOutcome struct {
	Structured extract.StructuredResult
	Validation *llm.ValidationReport // nil unless Cfg.ValidateStructured
}

// Run sends text to the structured extractor under the caller's credential.
func (p *ParseStage) Run(ctx context.Context, text, credential string) (ParseOutcome, error) {
	log := common.LoggerFromContext(ctx, p.Logger)

	sr, err := p.Extractor.ExtractStructured(ctx, text, credential)
	if err != nil {
		if common.KindOf(err) == common.KindUnknown {
			err = common.NewAppError(common.KindService, "structured extraction failed", err)
		}
		return ParseOutcome{}, err
	}

	out := ParseOutcome{Structured: sr}
	if p.Cfg.ValidateStructured {
		rep := llm.ValidateStructured(sr.Content)
		out.Validation = &rep
		if rep.Valid {
			log.Info("pipeline.parse.validated", "records", rep.Records, "non_canonical", rep.NonCanonical)
		} else {
			log.Warn("pipeline.parse.validation_failed", "records", rep.Records, "error", rep.Error)
		}
	}
	return out, nil
}
