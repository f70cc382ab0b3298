package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/pipeline"
)

// Processor is the slice of pipeline.Processor the HTTP layer needs.
type Processor interface {
	Process(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

type HTTPConfig struct {
	Addr             string
	CredentialHeader string
	MaxUploadBytes   int64 // 0 = no limit
	ShutdownTimeout  time.Duration
}

// HTTPServer exposes POST /ocr/ and GET /healthz.
type HTTPServer struct {
	cfg    HTTPConfig
	proc   Processor
	logger *slog.Logger
	server *http.Server
	once   sync.Once
}

func NewHTTPServer(cfg HTTPConfig, proc Processor, logger *slog.Logger) *HTTPServer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.CredentialHeader == "" {
		cfg.CredentialHeader = common.DefaultCredentialHeader
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &HTTPServer{cfg: cfg, proc: proc, logger: logger}
}

// Handler returns the fully wrapped router.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ocr", s.handleOCR)
	mux.HandleFunc("/ocr/", s.handleOCR)
	return requestIDMiddleware(s.logger, corsMiddleware(s.cfg.CredentialHeader, loggingMiddleware(s.logger, mux)))
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	s.once.Do(func() {
		s.server = &http.Server{
			Addr:              s.cfg.Addr,
			Handler:           s.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()
	s.logger.Info("http listening", "addr", s.cfg.Addr, "credential_header", s.cfg.CredentialHeader)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		respondJSON(w, http.StatusMethodNotAllowed, ErrorEnvelope{Error: "method not allowed"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
