package ocr

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/ecoscan/internal/common"
)

type Config struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	// MaxConcurrency caps simultaneous tesseract processes; 0 = unlimited.
	MaxConcurrency int

	// MaxPixels rejects larger images before decoding; 0 = DefaultMaxPixels.
	MaxPixels int64
}

type ExtractionResult struct {
	Text       string
	Format     string // decoder name reported by image.Decode
	Width      int
	Height     int
	Language   string
	Duration   time.Duration
	Confidence float32 // heuristic, diagnostic only
}

// Extractor turns uploaded image bytes into text with tesseract.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
	sem    chan struct{}
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return NewExtractorWithRunner(cfg, execRunner{logger: logger}, logger)
}

// NewExtractorWithRunner is NewExtractor with an explicit command runner.
func NewExtractorWithRunner(cfg Config, runner Runner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = DefaultMaxPixels
	}
	e := &Extractor{cfg: cfg, runner: runner, logger: logger}
	if cfg.MaxConcurrency > 0 {
		e.sem = make(chan struct{}, cfg.MaxConcurrency)
	}
	return e
}

// Extract decodes data as an image and returns the text tesseract reads from
// it, verbatim. Failures are *common.AppError of KindImageDecode or
// KindOCREngine.
func (e *Extractor) Extract(ctx context.Context, data []byte) (ExtractionResult, error) {
	start := time.Now()
	log := common.LoggerFromContext(ctx, e.logger)
	log.Debug("ocr.extract.start", "bytes", len(data), "lang", e.cfg.TesseractLang)

	img, err := decodeImage(data, e.cfg.MaxPixels)
	if err != nil {
		log.Warn("ocr.extract.decode_failed", "bytes", len(data), "error", err)
		return ExtractionResult{}, common.NewAppError(common.KindImageDecode, "uploaded file is not a readable image", err)
	}

	release, err := e.acquire(ctx)
	if err != nil {
		return ExtractionResult{}, common.NewAppError(common.KindOCREngine, "waiting for ocr slot", err)
	}
	defer release()

	txt, err := e.tesseractOCR(ctx, img.png)
	if err != nil {
		log.Error("ocr.extract.engine_failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return ExtractionResult{}, common.NewAppError(common.KindOCREngine, "text recognition failed", err)
	}

	res := ExtractionResult{
		Text:       txt,
		Format:     img.format,
		Width:      img.width,
		Height:     img.height,
		Language:   e.cfg.TesseractLang,
		Duration:   time.Since(start),
		Confidence: heuristicConfidence(txt),
	}
	log.Info("ocr.extract.ok",
		"format", res.Format,
		"width", res.Width,
		"height", res.Height,
		"text_len", len(res.Text),
		"confidence", res.Confidence,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) acquire(ctx context.Context) (func(), error) {
	if e.sem == nil {
		return func() {}, nil
	}
	select {
	case e.sem <- struct{}{}:
		return func() { <-e.sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
