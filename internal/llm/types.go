package llm

import "context"

// ResponseFormat hints how the model should shape its output.
type ResponseFormat string

const (
	// ResponseFormatText lets the model answer freely.
	ResponseFormatText ResponseFormat = "text"
	// ResponseFormatJSON asks the model to emit a single JSON value.
	ResponseFormatJSON ResponseFormat = "json_object"
)

// Message represents a conversation message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest contains all parameters for a completion call.
type CompletionRequest struct {
	Messages       []Message      `json:"messages"`
	Temperature    float64        `json:"temperature,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat ResponseFormat `json:"response_format,omitempty"`
}

// CompletionResponse is the model's reply.
type CompletionResponse struct {
	Content    string     `json:"content"`
	StopReason string     `json:"stop_reason,omitempty"`
	Usage      TokenUsage `json:"usage"`
}

// TokenUsage tracks token consumption for a single call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Client is the completion capability consumed by the generator and the
// assessor. Implementations must honor ctx cancellation and surface rate
// limits and timeouts as transient errors so callers can retry.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Model() string
}

// Config carries provider settings for constructing a client.
type Config struct {
	APIKey  string            `yaml:"api_key"`
	BaseURL string            `yaml:"base_url"`
	Model   string            `yaml:"model"`
	Timeout int               `yaml:"timeout_seconds"`
	Headers map[string]string `yaml:"headers,omitempty"`
}
