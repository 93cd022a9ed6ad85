package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgerrors "toolgauge/internal/errors"
	"toolgauge/internal/logging"
)

// openaiClient speaks the OpenAI-compatible chat completions API.
type openaiClient struct {
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	logger     logging.Logger
}

// NewOpenAIClient constructs a client for an OpenAI-compatible endpoint.
func NewOpenAIClient(config Config, logger logging.Logger) (Client, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	timeout := 120 * time.Second
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}

	return &openaiClient{
		model:      config.Model,
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		headers:    config.Headers,
		logger:     logging.OrNop(logger),
	}, nil
}

func (c *openaiClient) Model() string { return c.model }

func (c *openaiClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	oaiReq := map[string]any{
		"model":       c.model,
		"messages":    req.Messages,
		"temperature": req.Temperature,
		"stream":      false,
	}
	if req.MaxTokens > 0 {
		oaiReq["max_tokens"] = req.MaxTokens
	}
	if req.ResponseFormat == ResponseFormatJSON {
		oaiReq["response_format"] = map[string]string{"type": "json_object"}
	}

	body, err := json.Marshal(oaiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	c.logger.Debug("POST %s model=%s", endpoint, c.model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, wrapRequestError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapHTTPError(resp.StatusCode, respBody, resp.Header)
	}

	var oaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
		Error *struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &oaiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if oaiResp.Error != nil && oaiResp.Error.Message != "" {
		errMsg := oaiResp.Error.Message
		if oaiResp.Error.Type != "" {
			errMsg = oaiResp.Error.Type + ": " + oaiResp.Error.Message
		}
		return nil, mapHTTPError(resp.StatusCode, []byte(errMsg), resp.Header)
	}
	if len(oaiResp.Choices) == 0 {
		return nil, tgerrors.NewTransientError(errors.New("no choices in response"), "model returned an empty response")
	}

	return &CompletionResponse{
		Content:    oaiResp.Choices[0].Message.Content,
		StopReason: oaiResp.Choices[0].FinishReason,
		Usage: TokenUsage{
			PromptTokens:     oaiResp.Usage.PromptTokens,
			CompletionTokens: oaiResp.Usage.CompletionTokens,
			TotalTokens:      oaiResp.Usage.TotalTokens,
		},
	}, nil
}

func wrapRequestError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return tgerrors.NewTransientError(err, "completion request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	// Client-side timeouts surface as url.Error with Timeout()=true.
	return tgerrors.NewTransientError(err, fmt.Sprintf("completion request failed: %v", err))
}

func mapHTTPError(statusCode int, body []byte, header http.Header) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 300 {
		msg = msg[:300]
	}
	base := fmt.Errorf("api error %d: %s", statusCode, msg)

	if tgerrors.IsTransientHTTPStatus(statusCode) {
		transient := &tgerrors.TransientError{
			Err:        base,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("upstream returned %d, retrying", statusCode),
		}
		if ra := header.Get("Retry-After"); ra != "" {
			if seconds, err := strconv.Atoi(ra); err == nil {
				transient.RetryAfter = seconds
			}
		}
		return transient
	}

	return &tgerrors.PermanentError{
		Err:        base,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("upstream rejected the request (%d)", statusCode),
	}
}
