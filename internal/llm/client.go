package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	biderrors "bidwriter/internal/errors"
	"bidwriter/internal/httpclient"
	"bidwriter/internal/logging"
)

// chatClient speaks the OpenAI-compatible chat completions API.
type chatClient struct {
	model            string
	apiKey           string
	baseURL          string
	httpClient       *http.Client
	logger           logging.Logger
	maxResponseBytes int64
}

// NewChatClient constructs a client for the configured provider endpoint.
func NewChatClient(cfg Config, logger logging.Logger) Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.deepseek.com/v1"
	}
	logger = logging.OrNop(logger)
	return &chatClient{
		model:            cfg.Model,
		apiKey:           cfg.APIKey,
		baseURL:          baseURL,
		httpClient:       httpclient.New(cfg.Timeout, logger),
		logger:           logger,
		maxResponseBytes: cfg.MaxResponseBytes,
	}
}

func (c *chatClient) Complete(ctx context.Context, req Request) (string, error) {
	payload := map[string]any{
		"model":       c.model,
		"messages":    req.Messages,
		"temperature": req.Temperature,
	}
	if req.JSONMode {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	c.logger.Debug("POST %s model=%s json_mode=%t", endpoint, c.model, req.JSONMode)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("LLM request failed: %v", err)
		return "", biderrors.External(err, "LLM request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := readResponseBody(resp.Body, c.maxResponseBytes)
	if err != nil {
		return "", biderrors.External(err, "read LLM response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("LLM error response %d: %s", resp.StatusCode, string(respBody))
		return "", biderrors.Externalf(
			fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
			"LLM returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", biderrors.External(err, "decode LLM response")
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		errMsg := decoded.Error.Message
		if decoded.Error.Type != "" {
			errMsg = fmt.Sprintf("%s: %s", decoded.Error.Type, decoded.Error.Message)
		}
		return "", biderrors.External(errors.New(errMsg), "LLM reported an error")
	}
	if len(decoded.Choices) == 0 {
		return "", biderrors.External(errors.New("no choices in response"), "LLM returned an empty response")
	}

	content := decoded.Choices[0].Message.Content
	c.logger.Debug("LLM response: %d chars", len(content))
	return content, nil
}

// responseTooLargeError reports that a completion body blew past the
// configured cap before it was fully read.
type responseTooLargeError struct {
	limit int64
}

func (e responseTooLargeError) Error() string {
	return fmt.Sprintf("LLM response exceeded %d bytes", e.limit)
}

// readResponseBody drains a completion body, refusing anything larger than
// limit. A limit <= 0 disables the cap.
func readResponseBody(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	lr := &io.LimitedReader{R: r, N: limit + 1}
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, responseTooLargeError{limit: limit}
	}
	return data, nil
}
