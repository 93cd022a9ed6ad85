package llm

import (
	"context"
	"sync"
)

// ScriptedClient replays a fixed sequence of completions. It is the
// deterministic fake oracle used throughout the tests: queue canned JSON
// payloads or injected errors and assert on the recorded calls.
type ScriptedClient struct {
	mu      sync.Mutex
	script  []ScriptedTurn
	cursor  int
	calls   int
	lastReq CompletionRequest
}

// ScriptedTurn is one step of a scripted conversation.
type ScriptedTurn struct {
	Content string
	Err     error
}

// NewScriptedClient builds a client that returns the given turns in order.
// Once the script is exhausted the last turn repeats.
func NewScriptedClient(turns ...ScriptedTurn) *ScriptedClient {
	return &ScriptedClient{script: turns}
}

func (c *ScriptedClient) Model() string { return "scripted" }

func (c *ScriptedClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++
	c.lastReq = req

	if len(c.script) == 0 {
		return &CompletionResponse{Content: "{}"}, nil
	}

	turn := c.script[c.cursor]
	if c.cursor < len(c.script)-1 {
		c.cursor++
	}

	if turn.Err != nil {
		return nil, turn.Err
	}
	return &CompletionResponse{Content: turn.Content, StopReason: "stop"}, nil
}

// Calls reports how many times Complete was invoked.
func (c *ScriptedClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// LastRequest returns the most recent request seen by the client.
func (c *ScriptedClient) LastRequest() CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReq
}
