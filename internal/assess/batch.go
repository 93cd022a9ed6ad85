package assess

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AssessBatch scores many invocation results with bounded parallelism.
// Assessments are independent, so they run fan-out with at most concurrency
// oracle calls in flight. The call waits for every item to finish (or fall
// back) before returning; it never reports over a partial batch.
//
// On cancellation, items not yet started are skipped, in-flight oracle calls
// are abandoned by their per-call contexts, and everything already assessed
// is returned alongside ctx's error so completed work stays aggregable. That
// includes parse-failure fallbacks whose oracle call finished: only verdicts
// whose oracle call was cut off by the cancellation are discarded.
func (a *Assessor) AssessBatch(ctx context.Context, results []ToolInvocationResult, concurrency int) ([]QualityAssessment, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	assessments := make([]QualityAssessment, len(results))
	done := make([]bool, len(results))

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for i, result := range results {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			assessment, aborted := a.assess(ctx, result)
			if aborted {
				// Cancellation cut the oracle call off; abandoned partial
				// state, not a real verdict.
				return nil
			}
			assessments[i] = assessment
			done[i] = true
			return nil
		})
	}
	_ = g.Wait() // workers absorb their own failures

	if err := ctx.Err(); err != nil {
		completed := make([]QualityAssessment, 0, len(results))
		for i, ok := range done {
			if ok {
				completed = append(completed, assessments[i])
			}
		}
		return completed, err
	}
	return assessments, nil
}
