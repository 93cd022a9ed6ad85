package assess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRubricWeightsSumToOne(t *testing.T) {
	sum := WeightRelevance + WeightAccuracy + WeightCompleteness + WeightUsability + WeightFormat
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestWeightedScore(t *testing.T) {
	dims := DimensionScores{
		Relevance:    8.5,
		Accuracy:     9.0,
		Completeness: 7.5,
		Usability:    8.0,
		Format:       9.0,
	}
	want := 8.5*0.25 + 9.0*0.25 + 7.5*0.20 + 8.0*0.20 + 9.0*0.10
	require.InDelta(t, want, dims.Weighted(), 1e-6)

	// Uniform dimensions collapse to the shared value.
	uniform := DimensionScores{Relevance: 6, Accuracy: 6, Completeness: 6, Usability: 6, Format: 6}
	require.InDelta(t, 6.0, uniform.Weighted(), 1e-6)
}

func TestNewSuccessAssessment(t *testing.T) {
	dims := DimensionScores{Relevance: 8, Accuracy: 7, Completeness: 9, Usability: 6, Format: 10}
	a, err := NewSuccessAssessment(dims, "solid response", []string{"clear"}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, a.Validate())

	// The overall score is always recomputed from the dimensions.
	require.InDelta(t, dims.Weighted(), a.OverallScore, 1e-6)
	require.NotNil(t, a.Dimensions)
	require.False(t, a.IsErrorResponse)
	require.Nil(t, a.ErrorHandlingQuality)
	require.False(t, a.Fallback)

	// Nil slices come back empty so JSON consumers see arrays.
	require.Equal(t, []string{"clear"}, a.Strengths)
	require.NotNil(t, a.Weaknesses)
	require.Empty(t, a.Weaknesses)
	require.NotNil(t, a.Suggestions)
}

func TestNewSuccessAssessmentRejectsOutOfRange(t *testing.T) {
	for _, dims := range []DimensionScores{
		{Relevance: 11, Accuracy: 5, Completeness: 5, Usability: 5, Format: 5},
		{Relevance: 5, Accuracy: -1, Completeness: 5, Usability: 5, Format: 5},
	} {
		_, err := NewSuccessAssessment(dims, "", nil, nil, nil)
		require.Error(t, err)
	}
}

func TestNewErrorAssessment(t *testing.T) {
	a, err := NewErrorAssessment(7.0, "clear error", nil, []string{"no fix hint"}, nil)
	require.NoError(t, err)
	require.NoError(t, a.Validate())

	require.True(t, a.IsErrorResponse)
	require.Nil(t, a.Dimensions)
	require.NotNil(t, a.ErrorHandlingQuality)
	require.Equal(t, 7.0, *a.ErrorHandlingQuality)

	// Error handling quality doubles as the overall score.
	require.Equal(t, a.OverallScore, *a.ErrorHandlingQuality)

	_, err = NewErrorAssessment(10.5, "", nil, nil, nil)
	require.Error(t, err)
	_, err = NewErrorAssessment(-0.1, "", nil, nil, nil)
	require.Error(t, err)
}

func TestFallbackAssessmentIsDeterministic(t *testing.T) {
	for _, isError := range []bool{false, true} {
		a := FallbackAssessment(isError)
		require.Equal(t, FallbackAssessment(isError), a)
		require.NoError(t, a.Validate())

		require.Equal(t, FallbackScore, a.OverallScore)
		require.Equal(t, FallbackExplanation, a.Explanation)
		require.True(t, a.Fallback)
		require.Empty(t, a.Strengths)
		require.Empty(t, a.Weaknesses)
		require.Empty(t, a.Suggestions)
		require.Equal(t, isError, a.IsErrorResponse)
	}

	success := FallbackAssessment(false)
	require.NotNil(t, success.Dimensions)
	require.Nil(t, success.ErrorHandlingQuality)

	errResp := FallbackAssessment(true)
	require.Nil(t, errResp.Dimensions)
	require.NotNil(t, errResp.ErrorHandlingQuality)
	require.Equal(t, FallbackScore, *errResp.ErrorHandlingQuality)
}

func TestValidateRejectsMixedShapes(t *testing.T) {
	eh := 5.0

	// Success shape carrying error handling quality.
	mixed := QualityAssessment{
		OverallScore:         5,
		Dimensions:           &DimensionScores{},
		ErrorHandlingQuality: &eh,
	}
	require.Error(t, mixed.Validate())

	// Error shape carrying dimensions.
	mixed = QualityAssessment{
		OverallScore:    5,
		IsErrorResponse: true,
		Dimensions:      &DimensionScores{},
	}
	require.Error(t, mixed.Validate())

	// Neither populated.
	require.Error(t, QualityAssessment{OverallScore: 5}.Validate())

	// Out-of-range overall.
	require.Error(t, QualityAssessment{OverallScore: 12, Dimensions: &DimensionScores{}}.Validate())
}
