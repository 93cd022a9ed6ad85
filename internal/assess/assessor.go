// Package assess scores a tool's responses against a weighted quality rubric
// using an LLM oracle. The assessor never fails: transient oracle trouble is
// retried and anything still unusable becomes a deterministic neutral-scored
// fallback, so one flaky tool cannot abort a batch.
package assess

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"toolgauge/internal/config"
	tgerrors "toolgauge/internal/errors"
	"toolgauge/internal/llm"
	"toolgauge/internal/logging"
	"toolgauge/internal/metrics"
)

// Assessor scores (test case, invocation result) pairs. It is stateless and
// safe for concurrent use.
type Assessor struct {
	client      llm.Client
	cfg         config.AssessmentConfig
	retry       tgerrors.RetryConfig
	callTimeout time.Duration
	logger      logging.Logger
	toolName    string
	toolDesc    string
}

// NewAssessor constructs an Assessor for one tool under test. The retry
// budget covers rate limits and timeouts from the oracle; exhausting it
// degrades to a fallback assessment rather than an error.
func NewAssessor(client llm.Client, toolName, toolDescription string, cfg config.AssessmentConfig, retryCfg config.RetryConfig, logger logging.Logger) *Assessor {
	return &Assessor{
		client: client,
		cfg:    cfg,
		retry: tgerrors.RetryConfig{
			MaxAttempts: retryCfg.MaxAttempts,
			BaseDelay:   time.Duration(retryCfg.BaseDelayMS) * time.Millisecond,
			MaxDelay:    time.Duration(retryCfg.MaxDelayMS) * time.Millisecond,
		},
		callTimeout: time.Duration(retryCfg.TimeoutSecs) * time.Second,
		logger:      logging.OrNop(logger),
		toolName:    toolName,
		toolDesc:    toolDescription,
	}
}

// Assess scores one invocation result. It never returns an error; the
// routing between the success and error rubrics is decided once, up front,
// by the result's success flag.
func (a *Assessor) Assess(ctx context.Context, result ToolInvocationResult) QualityAssessment {
	assessment, _ := a.assess(ctx, result)
	return assessment
}

// assess additionally reports whether the verdict is a fallback forced by
// cancellation of the oracle call. A parse-failure fallback is a real
// verdict and reports false; batch processing keeps those.
func (a *Assessor) assess(ctx context.Context, result ToolInvocationResult) (QualityAssessment, bool) {
	if result.Success {
		return a.assessSuccess(ctx, result)
	}
	return a.assessError(ctx, result)
}

type successReply struct {
	Relevance    float64  `json:"relevance_score"`
	Accuracy     float64  `json:"accuracy_score"`
	Completeness float64  `json:"completeness_score"`
	Usability    float64  `json:"usability_score"`
	Format       float64  `json:"format_score"`
	Explanation  string   `json:"explanation"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Suggestions  []string `json:"suggestions"`
}

func (a *Assessor) assessSuccess(ctx context.Context, result ToolInvocationResult) (QualityAssessment, bool) {
	response := truncateResponse(result.Response, a.cfg.MaxResponseChars)
	prompt := successPrompt(a.toolName, a.toolDesc, result.TestCase, response)

	content, ok := a.complete(ctx, prompt)
	if !ok {
		return a.fallback(false), ctx.Err() != nil
	}

	var reply successReply
	if err := decodeReply(content, &reply); err != nil {
		metrics.ParseFailures.WithLabelValues("assess").Inc()
		a.logger.Warn("unparseable success assessment for %s: %v", a.toolName, err)
		return a.fallback(false), false
	}

	assessment, err := NewSuccessAssessment(DimensionScores{
		Relevance:    reply.Relevance,
		Accuracy:     reply.Accuracy,
		Completeness: reply.Completeness,
		Usability:    reply.Usability,
		Format:       reply.Format,
	}, reply.Explanation, reply.Strengths, reply.Weaknesses, reply.Suggestions)
	if err != nil {
		// Out-of-range scores are treated the same as unparseable output.
		metrics.ParseFailures.WithLabelValues("assess").Inc()
		a.logger.Warn("rejected success assessment for %s: %v", a.toolName, err)
		return a.fallback(false), false
	}
	return assessment, false
}

type errorReply struct {
	Clarity       float64  `json:"clarity_score"`
	Helpfulness   float64  `json:"helpfulness_score"`
	Actionability float64  `json:"actionability_score"`
	Explanation   string   `json:"explanation"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Suggestions   []string `json:"suggestions"`
}

func (a *Assessor) assessError(ctx context.Context, result ToolInvocationResult) (QualityAssessment, bool) {
	response := truncateResponse(result.Response, a.cfg.MaxResponseChars)
	prompt := errorPrompt(a.toolName, a.toolDesc, result.TestCase, response)

	content, ok := a.complete(ctx, prompt)
	if !ok {
		return a.fallback(true), ctx.Err() != nil
	}

	var reply errorReply
	if err := decodeReply(content, &reply); err != nil {
		metrics.ParseFailures.WithLabelValues("assess").Inc()
		a.logger.Warn("unparseable error assessment for %s: %v", a.toolName, err)
		return a.fallback(true), false
	}

	quality := (reply.Clarity + reply.Helpfulness + reply.Actionability) / 3
	assessment, err := NewErrorAssessment(quality, reply.Explanation, reply.Strengths, reply.Weaknesses, reply.Suggestions)
	if err != nil {
		metrics.ParseFailures.WithLabelValues("assess").Inc()
		a.logger.Warn("rejected error assessment for %s: %v", a.toolName, err)
		return a.fallback(true), false
	}
	return assessment, false
}

// complete runs one scoring call through the retry budget. Every attempt
// gets its own deadline so a hung oracle counts as a timeout, not a stall.
func (a *Assessor) complete(ctx context.Context, prompt string) (string, bool) {
	resp, err := tgerrors.RetryWithResult(ctx, a.retry, a.logger, func(ctx context.Context) (*llm.CompletionResponse, error) {
		callCtx := ctx
		if a.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, a.callTimeout)
			defer cancel()
		}
		resp, err := a.client.Complete(callCtx, llm.CompletionRequest{
			Messages:       []llm.Message{{Role: "user", Content: prompt}},
			Temperature:    a.cfg.Temperature,
			MaxTokens:      a.cfg.MaxTokens,
			ResponseFormat: llm.ResponseFormatJSON,
		})
		if err != nil {
			metrics.OracleCalls.WithLabelValues("assess", "error").Inc()
			return nil, err
		}
		metrics.OracleCalls.WithLabelValues("assess", "ok").Inc()
		return resp, nil
	})
	if err != nil {
		a.logger.Warn("oracle unavailable for %s, falling back: %v", a.toolName, err)
		return "", false
	}
	return resp.Content, true
}

func (a *Assessor) fallback(isErrorResponse bool) QualityAssessment {
	metrics.FallbackAssessments.Inc()
	return FallbackAssessment(isErrorResponse)
}

// decodeReply parses the oracle's JSON, tolerating markdown fences and
// making one repair pass over structurally broken output.
func decodeReply(content string, out any) error {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "{"); idx >= 0 {
		if end := strings.LastIndex(content, "}"); end > idx {
			content = content[idx : end+1]
		}
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return err
		}
		return json.Unmarshal([]byte(repaired), out)
	}
	return nil
}
