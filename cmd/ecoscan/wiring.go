package main

import (
	"log/slog"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/extract"
	"github.com/joseph-ayodele/ecoscan/internal/llm/openai"
	"github.com/joseph-ayodele/ecoscan/internal/ocr"
	"github.com/joseph-ayodele/ecoscan/internal/pipeline"
)

// buildProcessor wires OCR -> LLM from config. runner may be nil to use the
// real tesseract binary.
func buildProcessor(cfg *common.Config, runner ocr.Runner, logger *slog.Logger) *pipeline.Processor {
	ocrCfg := ocr.Config{
		Tesseract:      cfg.OCR.Tesseract,
		TesseractLang:  cfg.OCR.Lang,
		TessdataDir:    cfg.OCR.TessdataDir,
		PSM:            cfg.OCR.PSM,
		OEM:            cfg.OCR.OEM,
		MaxConcurrency: cfg.OCR.MaxConcurrency,
		MaxPixels:      cfg.OCR.MaxPixels,
	}
	var extractor *ocr.Extractor
	if runner != nil {
		extractor = ocr.NewExtractorWithRunner(ocrCfg, runner, logger)
	} else {
		extractor = ocr.NewExtractor(ocrCfg, logger)
	}
	ocrStage := pipeline.NewOCRStage(extract.NewOCRAdapter(extractor, logger), logger)

	llmClient := openai.NewClient(openai.Config{
		BaseURL:     cfg.LLM.BaseURL,
		OrgID:       cfg.LLM.OrgID,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	parseStage := pipeline.NewParseStage(logger,
		pipeline.Config{ValidateStructured: cfg.LLM.ValidateStructured},
		extract.NewLLMAdapter(llmClient, logger),
	)

	return pipeline.NewProcessor(logger, ocrStage, parseStage)
}
