package assess

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"toolgauge/internal/llm"
)

// meteringClient is a well-behaved oracle that tracks how many completions
// run at once.
type meteringClient struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	calls       int
	reply       string
}

func (c *meteringClient) Model() string { return "metering" }

func (c *meteringClient) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	c.mu.Lock()
	c.calls++
	c.inFlight++
	if c.inFlight > c.maxInFlight {
		c.maxInFlight = c.inFlight
	}
	c.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()
	return &llm.CompletionResponse{Content: c.reply}, nil
}

// cancellingClient answers normally until a threshold call, then cancels the
// batch from inside the oracle and fails with the context's error.
type cancellingClient struct {
	mu          sync.Mutex
	calls       int
	cancelAfter int
	cancel      context.CancelFunc
	reply       string
}

func (c *cancellingClient) Model() string { return "cancelling" }

func (c *cancellingClient) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	c.mu.Lock()
	c.calls++
	n := c.calls
	c.mu.Unlock()

	if n >= c.cancelAfter {
		c.cancel()
		return nil, context.Canceled
	}
	return &llm.CompletionResponse{Content: c.reply}, nil
}

// garblingClient answers normally until a threshold call; on that call it
// cancels the batch but still returns unusable content, so the oracle call
// itself finished.
type garblingClient struct {
	mu          sync.Mutex
	calls       int
	garbleAfter int
	cancel      context.CancelFunc
	reply       string
}

func (c *garblingClient) Model() string { return "garbling" }

func (c *garblingClient) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	c.mu.Lock()
	c.calls++
	n := c.calls
	c.mu.Unlock()

	if n >= c.garbleAfter {
		c.cancel()
		return &llm.CompletionResponse{Content: "no JSON to be found here"}, nil
	}
	return &llm.CompletionResponse{Content: c.reply}, nil
}

func TestAssessBatchScoresEverything(t *testing.T) {
	client := llm.NewScriptedClient(llm.ScriptedTurn{Content: successReplyJSON})
	a := newTestAssessor(client, 3)

	results := []ToolInvocationResult{
		successResult("one"),
		successResult("two"),
		successResult("three"),
	}
	assessments, err := a.AssessBatch(context.Background(), results, 2)
	require.NoError(t, err)
	require.Len(t, assessments, 3)
	for i, assessment := range assessments {
		require.NoError(t, assessment.Validate(), "assessment %d", i)
		require.False(t, assessment.Fallback, "assessment %d", i)
	}
	require.Equal(t, 3, client.Calls())
}

func TestAssessBatchKeepsOrderAcrossRoutingPaths(t *testing.T) {
	// Success and error rubrics interleave; each verdict must land at its
	// own input's index regardless of completion order.
	client := llm.NewScriptedClient(llm.ScriptedTurn{Content: successReplyJSON})
	a := newTestAssessor(client, 3)

	results := []ToolInvocationResult{
		successResult("one"),
		errorResult("boom"),
		successResult("two"),
		errorResult("crash"),
	}
	assessments, err := a.AssessBatch(context.Background(), results, 4)
	require.NoError(t, err)
	require.Len(t, assessments, 4)
	for i, result := range results {
		require.Equal(t, !result.Success, assessments[i].IsErrorResponse, "index %d", i)
	}
}

func TestAssessBatchBoundsParallelism(t *testing.T) {
	client := &meteringClient{reply: successReplyJSON}
	a := newTestAssessor(client, 3)

	results := make([]ToolInvocationResult, 8)
	for i := range results {
		results[i] = successResult("payload")
	}

	assessments, err := a.AssessBatch(context.Background(), results, 2)
	require.NoError(t, err)
	require.Len(t, assessments, 8)
	require.Equal(t, 8, client.calls)
	require.LessOrEqual(t, client.maxInFlight, 2)
	require.Greater(t, client.maxInFlight, 0)
}

func TestAssessBatchRetainsCompletedWorkOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &cancellingClient{cancelAfter: 3, cancel: cancel, reply: successReplyJSON}
	a := newTestAssessor(client, 3)

	results := make([]ToolInvocationResult, 6)
	for i := range results {
		results[i] = successResult("payload")
	}

	// Sequential processing makes the cut deterministic: two verdicts land
	// before the third call cancels the batch.
	assessments, err := a.AssessBatch(ctx, results, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, assessments, 2)
	for _, assessment := range assessments {
		require.False(t, assessment.Fallback)
		require.NoError(t, assessment.Validate())
	}
}

func TestAssessBatchRetainsParseFailureVerdictUnderCancellation(t *testing.T) {
	// The second oracle call completes with unusable output at the same
	// moment the batch is cancelled. That fallback is a real verdict and
	// must be retained; only verdicts whose oracle call was cut off by the
	// cancellation are dropped.
	ctx, cancel := context.WithCancel(context.Background())
	client := &garblingClient{garbleAfter: 2, cancel: cancel, reply: successReplyJSON}
	a := newTestAssessor(client, 3)

	results := make([]ToolInvocationResult, 4)
	for i := range results {
		results[i] = successResult("payload")
	}

	assessments, err := a.AssessBatch(ctx, results, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, assessments, 2)
	require.False(t, assessments[0].Fallback)
	require.True(t, assessments[1].Fallback)
	require.NoError(t, assessments[1].Validate())
}

func TestAssessBatchSkipsEverythingWhenAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := llm.NewScriptedClient(llm.ScriptedTurn{Content: successReplyJSON})
	a := newTestAssessor(client, 3)

	assessments, err := a.AssessBatch(ctx, []ToolInvocationResult{successResult("x")}, 2)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, assessments)
	require.Zero(t, client.Calls())
}

func TestAssessBatchEmptyInput(t *testing.T) {
	a := newTestAssessor(llm.NewScriptedClient(), 3)
	assessments, err := a.AssessBatch(context.Background(), nil, 4)
	require.NoError(t, err)
	require.Empty(t, assessments)
}
