package openai

import (
	"log/slog"
	"net/http"
	"time"
)

// Config for the OpenAI client. It carries no API key: the caller supplies a
// credential with every request.
type Config struct {
	BaseURL     string        // default https://api.openai.com/v1
	OrgID       string        // optional OpenAI-Organization header
	Model       string        // e.g., "gpt-3.5-turbo"
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout

	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-3.5-turbo"
)

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:    cfg,
		http:   hc,
		logger: logger,
	}
}

// Model reports the configured chat model.
func (c *Client) Model() string { return c.cfg.Model }
