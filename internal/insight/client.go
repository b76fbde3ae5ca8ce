package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
)

// HTTPClient talks to the external report/suggestion service over HTTP.
type HTTPClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewHTTPClient(config Config, logger *slog.Logger) *HTTPClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *HTTPClient) GenerateReport(ctx context.Context, expenses []ExpensePayload, budgets []BudgetPayload) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"expenses": expenses,
		"budgets":  budgets,
	}
	return c.post(ctx, "/report", payload)
}

func (c *HTTPClient) GetSuggestions(ctx context.Context, expenses []ExpensePayload) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"expenses": expenses,
	}
	return c.post(ctx, "/suggestions", payload)
}

func (c *HTTPClient) post(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal insight request: %w", err)
	}

	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("insight request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("insight service returned non-success status",
			"path", path,
			"status_code", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if !json.Valid(body) {
		c.logger.Error("insight service returned malformed body", "path", path)
		return nil, fmt.Errorf("%w: malformed response", ErrUpstream)
	}

	return json.RawMessage(body), nil
}
