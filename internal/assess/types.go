package assess

import (
	"fmt"

	"toolgauge/internal/testgen"
)

// Rubric weights for success responses. Fixed constants; they sum to 1.0 and
// OverallScore is always recomputed from them rather than trusted from the
// oracle.
const (
	WeightRelevance    = 0.25
	WeightAccuracy     = 0.25
	WeightCompleteness = 0.20
	WeightUsability    = 0.20
	WeightFormat       = 0.10
)

// FallbackScore is the neutral score used when the oracle's output cannot be
// trusted.
const FallbackScore = 5.0

// FallbackExplanation is the sentinel explanation attached to fallback
// assessments.
const FallbackExplanation = "Quality assessment unavailable: the scoring oracle did not return a usable result"

// ToolInvocationResult is what the external test runner observed when it ran
// one test case against the tool. The assessor only reads it.
type ToolInvocationResult struct {
	TestCase testgen.TestCase `json:"test_case"`
	Success  bool             `json:"success"`
	Response string           `json:"response"`
}

// DimensionScores holds the five weighted sub-scores of the success rubric.
type DimensionScores struct {
	Relevance    float64 `json:"relevance_score"`
	Accuracy     float64 `json:"accuracy_score"`
	Completeness float64 `json:"completeness_score"`
	Usability    float64 `json:"usability_score"`
	Format       float64 `json:"format_score"`
}

// Weighted returns the rubric-weighted overall score.
func (d DimensionScores) Weighted() float64 {
	return d.Relevance*WeightRelevance +
		d.Accuracy*WeightAccuracy +
		d.Completeness*WeightCompleteness +
		d.Usability*WeightUsability +
		d.Format*WeightFormat
}

func (d DimensionScores) inRange() bool {
	for _, score := range []float64{d.Relevance, d.Accuracy, d.Completeness, d.Usability, d.Format} {
		if score < 0 || score > 10 {
			return false
		}
	}
	return true
}

// QualityAssessment is the scored verdict for one (test case, response)
// pair. Exactly one of Dimensions or ErrorHandlingQuality is set, matching
// IsErrorResponse. Instances are immutable once constructed.
type QualityAssessment struct {
	OverallScore float64          `json:"overall_score"`
	Dimensions   *DimensionScores `json:"dimensions,omitempty"`

	Explanation string   `json:"explanation"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`

	IsErrorResponse      bool     `json:"is_error_response"`
	ErrorHandlingQuality *float64 `json:"error_handling_quality,omitempty"`

	// Fallback marks assessments that carry the neutral score because the
	// oracle's output was unusable.
	Fallback bool `json:"fallback,omitempty"`
}

// NewSuccessAssessment builds the record for a non-error response. The
// overall score is recomputed from the dimensions.
func NewSuccessAssessment(dims DimensionScores, explanation string, strengths, weaknesses, suggestions []string) (QualityAssessment, error) {
	if !dims.inRange() {
		return QualityAssessment{}, fmt.Errorf("dimension scores must be within [0, 10]: %+v", dims)
	}
	return QualityAssessment{
		OverallScore: dims.Weighted(),
		Dimensions:   &dims,
		Explanation:  explanation,
		Strengths:    orEmpty(strengths),
		Weaknesses:   orEmpty(weaknesses),
		Suggestions:  orEmpty(suggestions),
	}, nil
}

// NewErrorAssessment builds the record for an error response. The error
// handling quality doubles as the overall score so error responses aggregate
// on the same scale.
func NewErrorAssessment(errorHandling float64, explanation string, strengths, weaknesses, suggestions []string) (QualityAssessment, error) {
	if errorHandling < 0 || errorHandling > 10 {
		return QualityAssessment{}, fmt.Errorf("error handling quality %v out of range [0, 10]", errorHandling)
	}
	return QualityAssessment{
		OverallScore:         errorHandling,
		Explanation:          explanation,
		Strengths:            orEmpty(strengths),
		Weaknesses:           orEmpty(weaknesses),
		Suggestions:          orEmpty(suggestions),
		IsErrorResponse:      true,
		ErrorHandlingQuality: &errorHandling,
	}, nil
}

// FallbackAssessment returns the deterministic neutral-scored record for the
// given routing path.
func FallbackAssessment(isErrorResponse bool) QualityAssessment {
	a := QualityAssessment{
		OverallScore:    FallbackScore,
		Explanation:     FallbackExplanation,
		Strengths:       []string{},
		Weaknesses:      []string{},
		Suggestions:     []string{},
		IsErrorResponse: isErrorResponse,
		Fallback:        true,
	}
	if isErrorResponse {
		score := FallbackScore
		a.ErrorHandlingQuality = &score
	} else {
		a.Dimensions = &DimensionScores{
			Relevance:    FallbackScore,
			Accuracy:     FallbackScore,
			Completeness: FallbackScore,
			Usability:    FallbackScore,
			Format:       FallbackScore,
		}
	}
	return a
}

// Validate checks the structural invariants of an assessment record.
func (a QualityAssessment) Validate() error {
	if a.OverallScore < 0 || a.OverallScore > 10 {
		return fmt.Errorf("overall score %v out of range [0, 10]", a.OverallScore)
	}
	switch {
	case a.IsErrorResponse && (a.ErrorHandlingQuality == nil || a.Dimensions != nil):
		return fmt.Errorf("error assessment must carry error handling quality and no dimensions")
	case !a.IsErrorResponse && (a.Dimensions == nil || a.ErrorHandlingQuality != nil):
		return fmt.Errorf("success assessment must carry dimensions and no error handling quality")
	}
	return nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
