package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/llm"
	"github.com/finwerk/docpipe/internal/resilience"
)

// Client implements llm.StructuredGenerationService against the OpenAI
// chat/completions API. The target schema rides along as a system message
// and every response is validated locally before it is returned.
type Client struct {
	cfg        Config
	httpClient *http.Client
	exec       *resilience.Executor
	log        *slog.Logger
}

func NewClient(cfg Config, exec *resilience.Executor, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		exec:       exec,
		log:        logger,
	}
}

// GenerateStructured runs one constrained generation call. Transport and
// rate-limit failures are retried by the resilience executor; a response
// that does not validate against req.Schema is ErrSchema and never retried.
func (c *Client) GenerateStructured(ctx context.Context, req llm.GenerateRequest) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.generate.start",
		"req_id", rid,
		"schema", req.SchemaName,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.User),
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.User + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(req.Schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"

	var raw []byte
	call := func(ctx context.Context) error {
		var err error
		raw, err = c.post(ctx, endpoint, body)
		return err
	}

	var err error
	if c.exec != nil {
		err = c.exec.Execute(ctx, "openai.chat", call, classifyHTTPError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		c.log.Error("llm.generate.http_error",
			"req_id", rid, "schema", req.SchemaName, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return nil, fmt.Errorf("no choices in openai response")
	}
	rawContent := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	if err := llm.ValidateJSONAgainstSchema(req.Schema, rawContent); err != nil {
		c.log.Error("llm.generate.schema_validation_failed",
			"req_id", rid, "schema", req.SchemaName, "error", err,
			"content", string(rawContent),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return rawContent, common.WrapError(common.ErrSchema, "llm.generate", err)
	}

	c.log.Info("llm.generate.ok",
		"req_id", rid,
		"schema", req.SchemaName,
		"bytes", len(rawContent),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rawContent, nil
}

// statusError carries the HTTP status for retry classification.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("openai status %d: %s", e.status, e.body)
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{status: resp.StatusCode, body: string(raw)}
	}
	return raw, nil
}

// classifyHTTPError retries rate limits and server-side failures; client
// errors (bad request, auth) and cancellation fail immediately.
func classifyHTTPError(err error) resilience.Classification {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Classification{Retryable: false, RecordFailure: false}
	}
	var se *statusError
	if errors.As(err, &se) {
		retryable := se.status == http.StatusTooManyRequests || se.status >= 500
		return resilience.Classification{Retryable: retryable, RecordFailure: retryable}
	}
	// transport-level failure
	return resilience.Classification{Retryable: true, RecordFailure: true}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

var _ llm.StructuredGenerationService = (*Client)(nil)
