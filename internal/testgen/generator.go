// Package testgen synthesizes invocation test cases for an MCP tool from its
// parameter schema. An LLM proposes candidate cases per category; every
// candidate is then checked against the schema so the generator's output
// invariants hold regardless of what the model returns.
package testgen

import (
	"context"

	"toolgauge/internal/config"
	"toolgauge/internal/llm"
	"toolgauge/internal/logging"
	"toolgauge/internal/metrics"
	"toolgauge/internal/schema"
)

// Generator produces test cases for one tool schema at a time. It is
// stateless between calls and safe for concurrent use.
type Generator struct {
	client llm.Client
	cfg    config.GenerationConfig
	logger logging.Logger
}

// NewGenerator constructs a Generator. client should already carry retry
// behavior (see llm.NewRetryClient); the generator treats any completion
// error as "oracle unavailable" and degrades to synthesized cases.
func NewGenerator(client llm.Client, cfg config.GenerationConfig, logger logging.Logger) *Generator {
	return &Generator{
		client: client,
		cfg:    cfg,
		logger: logging.OrNop(logger),
	}
}

// categoryPlan fixes how many cases each category receives.
type categoryPlan struct {
	realistic int
	edge      int
	invalid   int
	stress    int
}

// planCounts distributes maxCases across the four categories. Realistic
// cases take the largest share; every category gets at least one case once
// the budget allows four.
func planCounts(maxCases int) categoryPlan {
	switch {
	case maxCases <= 1:
		return categoryPlan{realistic: 1}
	case maxCases == 2:
		return categoryPlan{realistic: 1, invalid: 1}
	case maxCases == 3:
		return categoryPlan{realistic: 1, edge: 1, invalid: 1}
	}

	plan := categoryPlan{stress: 1}
	plan.edge = maxCases / 4
	if plan.edge < 1 {
		plan.edge = 1
	}
	plan.invalid = maxCases / 4
	if plan.invalid < 1 {
		plan.invalid = 1
	}
	plan.realistic = maxCases - plan.edge - plan.invalid - plan.stress
	return plan
}

// Generate produces up to maxCases test cases for the given schema. It never
// returns an error: oracle failures, unparseable output, and unusable
// schemas all degrade to deterministic schema-derived cases, and a
// structurally valid schema always yields at least one realistic case.
func (g *Generator) Generate(ctx context.Context, s schema.ToolSchema, maxCases int) []TestCase {
	if maxCases <= 0 {
		maxCases = g.cfg.MaxCases
	}
	if maxCases <= 0 {
		maxCases = 8
	}

	if len(s.Parameters) == 0 {
		g.logger.Debug("schema for %s declares no parameters, emitting degenerate case", s.Name)
		return []TestCase{degenerateCase(s)}
	}

	plan := planCounts(maxCases)
	cases := make([]TestCase, 0, maxCases)

	cases = append(cases, g.generateCategory(ctx, s, TestTypeRealistic, plan.realistic)...)
	cases = append(cases, g.generateCategory(ctx, s, TestTypeEdgeCase, plan.edge)...)
	cases = append(cases, g.generateCategory(ctx, s, TestTypeInvalid, plan.invalid)...)
	cases = append(cases, g.generateCategory(ctx, s, TestTypeStressTest, plan.stress)...)

	cases = g.ensureMissingRequiredCase(s, cases)

	if len(cases) > maxCases {
		cases = cases[:maxCases]
	}
	if !hasCategory(cases, TestTypeRealistic) {
		// Never fewer than one realistic case.
		if len(cases) == maxCases && maxCases > 0 {
			cases = cases[:maxCases-1]
		}
		cases = append([]TestCase{synthRealisticCase(s)}, cases...)
	}

	g.logger.Info("generated %d test cases for %s", len(cases), s.Name)
	return cases
}

// generateCategory asks the oracle for count cases of one category, filters
// them against the schema, and tops up any shortfall from the synthesizers.
func (g *Generator) generateCategory(ctx context.Context, s schema.ToolSchema, testType TestType, count int) []TestCase {
	if count <= 0 {
		return nil
	}

	kept := make([]TestCase, 0, count)
	for _, c := range g.proposeCases(ctx, s, testType, count) {
		if len(kept) == count {
			break
		}
		if c, ok := g.conform(s, testType, c); ok {
			kept = append(kept, c)
		}
	}

	for len(kept) < count {
		c, ok := g.synthesize(s, testType, len(kept))
		if !ok {
			break
		}
		kept = append(kept, c)
	}
	return kept
}

// proposeCases runs the oracle for one category. Failures return nil; the
// caller tops up from synthesis.
func (g *Generator) proposeCases(ctx context.Context, s schema.ToolSchema, testType TestType, count int) []rawCase {
	var prompt string
	var temperature float64
	switch testType {
	case TestTypeRealistic:
		prompt, temperature = realisticPrompt(s, count), g.cfg.RealisticTemperature
	case TestTypeEdgeCase:
		prompt, temperature = edgeCasePrompt(s, count), g.cfg.EdgeTemperature
	case TestTypeInvalid:
		prompt, temperature = invalidPrompt(s, count), g.cfg.InvalidTemperature
	default:
		prompt, temperature = stressPrompt(s, count), g.cfg.StressTemperature
	}

	resp, err := g.client.Complete(ctx, llm.CompletionRequest{
		Messages:       []llm.Message{{Role: "user", Content: prompt}},
		Temperature:    temperature,
		MaxTokens:      g.cfg.MaxTokens,
		ResponseFormat: llm.ResponseFormatJSON,
	})
	if err != nil {
		metrics.OracleCalls.WithLabelValues("testgen", "error").Inc()
		g.logger.Warn("%s case generation for %s failed, synthesizing instead: %v", testType, s.Name, err)
		return nil
	}
	metrics.OracleCalls.WithLabelValues("testgen", "ok").Inc()

	proposed, err := parseCaseList(resp.Content)
	if err != nil {
		metrics.ParseFailures.WithLabelValues("testgen").Inc()
		g.logger.Warn("%s case output for %s unparseable, synthesizing instead: %v", testType, s.Name, err)
		return nil
	}
	return proposed
}

// conform turns a model-proposed case into a TestCase that honors the
// category's schema contract, or rejects it.
func (g *Generator) conform(s schema.ToolSchema, testType TestType, c rawCase) (TestCase, bool) {
	if c.Arguments == nil {
		c.Arguments = map[string]any{}
	}

	switch testType {
	case TestTypeRealistic, TestTypeEdgeCase, TestTypeStressTest:
		if !s.ValidArguments(c.Arguments) {
			g.logger.Debug("dropping proposed %s case for %s: %v", testType, s.Name, s.Violations(c.Arguments))
			return TestCase{}, false
		}
	case TestTypeInvalid:
		if s.ValidArguments(c.Arguments) {
			// The model produced a legal invocation; force a violation so
			// the case still exercises the tool's input validation.
			required := s.RequiredParameters()
			if len(required) == 0 {
				return TestCase{}, false
			}
			delete(c.Arguments, required[0].Name)
			if s.ValidArguments(c.Arguments) {
				return TestCase{}, false
			}
		}
	}

	return TestCase{
		TestType:         testType,
		Arguments:        c.Arguments,
		Description:      c.Description,
		ExpectedBehavior: c.ExpectedBehavior,
		Difficulty:       normalizeDifficulty(c.Difficulty, testType),
	}, true
}

// synthesize produces the nth deterministic case for a category.
func (g *Generator) synthesize(s schema.ToolSchema, testType TestType, n int) (TestCase, bool) {
	switch testType {
	case TestTypeRealistic:
		return synthRealisticCase(s), true
	case TestTypeEdgeCase:
		return synthEdgeCase(s), true
	case TestTypeStressTest:
		return synthStressCase(s), true
	default:
		// Alternate between the two invalid constructions for variety.
		if n%2 == 0 {
			if c, ok := synthMissingRequiredCase(s); ok {
				return c, true
			}
			return synthWrongTypeCase(s)
		}
		if c, ok := synthWrongTypeCase(s); ok {
			return c, true
		}
		return synthMissingRequiredCase(s)
	}
}

// ensureMissingRequiredCase guarantees that, for schemas with required
// parameters, at least one invalid case omits one of them.
func (g *Generator) ensureMissingRequiredCase(s schema.ToolSchema, cases []TestCase) []TestCase {
	replacement, ok := synthMissingRequiredCase(s)
	if !ok {
		return cases
	}

	firstInvalid := -1
	for i, c := range cases {
		if c.TestType != TestTypeInvalid {
			continue
		}
		if hasMissingRequired(s, c.Arguments) {
			return cases
		}
		if firstInvalid < 0 {
			firstInvalid = i
		}
	}
	if firstInvalid >= 0 {
		cases[firstInvalid] = replacement
		return cases
	}
	return append(cases, replacement)
}

func hasMissingRequired(s schema.ToolSchema, args map[string]any) bool {
	for _, p := range s.RequiredParameters() {
		if _, ok := args[p.Name]; !ok {
			return true
		}
	}
	return false
}

func hasCategory(cases []TestCase, testType TestType) bool {
	for _, c := range cases {
		if c.TestType == testType {
			return true
		}
	}
	return false
}
