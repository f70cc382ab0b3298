package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/llm"
)

// wireMessage keeps "content" on the wire even when it is empty;
// goopenai.ChatCompletionMessage omits it.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model       string        `json:"model"`
	Temperature float32       `json:"temperature"`
	Messages    []wireMessage `json:"messages"`
}

// ExtractStructured implements llm.StructuredExtractor with a single
// chat/completions call: system = llm.ExtractionPrompt, user = the OCR text.
// The call authenticates with req.Credential, never with process config.
func (c *Client) ExtractStructured(ctx context.Context, req llm.ExtractRequest) (llm.Completion, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()
	log := common.LoggerFromContext(ctx, c.logger)

	if strings.TrimSpace(req.Credential) == "" {
		return llm.Completion{}, common.NewAppError(common.KindInvalidRequest, "credential is required", common.ErrInvalidInput)
	}

	log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.OCRText),
		"prompt_version", llm.PromptVersion,
	)

	body := wireRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []wireMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: llm.ExtractionPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: req.OCRText},
		},
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"

	var resp goopenai.ChatCompletionResponse
	if err := c.post(ctx, endpoint, req.Credential, body, &resp); err != nil {
		appErr := classify(err)
		log.Error("llm.extract.error",
			"req_id", rid,
			"kind", appErr.Kind.String(),
			"status", statusCode(err),
			"error", appErr.Message,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Completion{}, appErr
	}

	if len(resp.Choices) == 0 {
		log.Error("llm.extract.no_choices",
			"req_id", rid,
			"response_id", resp.ID,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Completion{}, common.NewAppError(common.KindService, "chat-completion response had no choices", common.ErrNoChoices)
	}

	choice := resp.Choices[0]
	out := llm.Completion{
		Content:       strings.TrimSpace(choice.Message.Content),
		Model:         resp.Model,
		FinishReason:  string(choice.FinishReason),
		PromptVersion: llm.PromptVersion,
		TotalTokens:   resp.Usage.TotalTokens,
	}
	log.Info("llm.extract.ok",
		"req_id", rid,
		"model", out.Model,
		"finish_reason", out.FinishReason,
		"content_len", len(out.Content),
		"total_tokens", out.TotalTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// post sends one JSON request authenticated with credential and decodes a 2xx
// body into out. Non-2xx answers come back as *goopenai.APIError when the body
// carries an OpenAI error object, *goopenai.RequestError otherwise.
func (c *Client) post(ctx context.Context, url, credential string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.OrgID != "" {
		req.Header.Set("OpenAI-Organization", c.cfg.OrgID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("openai http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp goopenai.ErrorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != nil {
			errResp.Error.HTTPStatus = resp.Status
			errResp.Error.HTTPStatusCode = resp.StatusCode
			return errResp.Error
		}
		return &goopenai.RequestError{
			HTTPStatus:     resp.Status,
			HTTPStatusCode: resp.StatusCode,
			Err:            fmt.Errorf("openai status %d", resp.StatusCode),
			Body:           raw,
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode openai response: %w", err)
	}
	return nil
}
