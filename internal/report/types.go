package report

import (
	"toolgauge/internal/assess"
	"toolgauge/internal/testgen"
)

// Record is one assessment in aggregation scope: which repository and tool
// it belongs to, what kind of test produced it, and the verdict itself.
// Records are supplied by an external store; aggregation only reads them.
type Record struct {
	Repository string                   `json:"repository"`
	Tool       string                   `json:"tool"`
	TestType   testgen.TestType         `json:"test_type"`
	Assessment assess.QualityAssessment `json:"assessment"`
}

// ToolQualitySummary is the per-tool rollup. AverageQuality is nil when the
// tool has no assessments.
type ToolQualitySummary struct {
	Tool           string   `json:"tool"`
	AverageQuality *float64 `json:"average_quality"`
	TestCount      int      `json:"test_count"`
	SuccessCount   int      `json:"success_count"`
}

// TestTypeInsight summarizes assessments that share a test category.
type TestTypeInsight struct {
	Count      int     `json:"count"`
	AvgQuality float64 `json:"avg_quality"`
}

// QualityInsights carries the derived observations of a repository report.
type QualityInsights struct {
	ByTestType             map[testgen.TestType]TestTypeInsight `json:"by_test_type"`
	CommonStrengths        []string                             `json:"common_strengths"`
	CommonWeaknesses       []string                             `json:"common_weaknesses"`
	ImprovementSuggestions []string                             `json:"improvement_suggestions"`
}

// ScoreStats summarizes a set of overall scores.
type ScoreStats struct {
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// RepositoryQualityReport is the per-repository rollup. It is a derived,
// recomputable view: regenerating it from the same records yields an
// identical report.
type RepositoryQualityReport struct {
	Repository           string                        `json:"repository"`
	OverallQualityScore  *float64                      `json:"overall_quality_score"`
	QualityBreakdown     *assess.DimensionScores       `json:"quality_breakdown"`
	ToolQualitySummaries map[string]ToolQualitySummary `json:"tool_quality_assessments"`
	QualityInsights      QualityInsights               `json:"quality_insights"`
	TestCount            int                           `json:"test_count"`
	SuccessCount         int                           `json:"success_count"`
	ErrorCount           int                           `json:"error_count"`
	ScoreStats           *ScoreStats                   `json:"score_stats"`
}

// Tier buckets an overall score for distribution reporting. Tiers never feed
// back into the stored scores.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// LeaderboardEntry is one ranked repository.
type LeaderboardEntry struct {
	Repository   string  `json:"repository"`
	QualityScore float64 `json:"quality_score"`
	TestCount    int     `json:"test_count"`
	Tier         Tier    `json:"tier"`
}

// LeaderboardStatistics summarizes the ranked population.
type LeaderboardStatistics struct {
	Repositories   int          `json:"repositories"`
	AverageQuality float64      `json:"average_quality"`
	HighestQuality float64      `json:"highest_quality"`
	LowestQuality  float64      `json:"lowest_quality"`
	Distribution   map[Tier]int `json:"distribution"`
}

// Leaderboard ranks repositories by overall quality.
type Leaderboard struct {
	Entries    []LeaderboardEntry    `json:"leaderboard"`
	Statistics LeaderboardStatistics `json:"statistics"`
}

// ToolRanking is one entry of the cross-repository tool ranking.
type ToolRanking struct {
	Tool            string  `json:"tool"`
	AverageQuality  float64 `json:"average_quality"`
	RepositoryCount int     `json:"repository_count"`
	MinQuality      float64 `json:"min_quality"`
	MaxQuality      float64 `json:"max_quality"`
}

// Analytics is the cross-repository summary.
type Analytics struct {
	OverallQuality     ScoreStats            `json:"overall_quality"`
	QualityByDimension map[string]ScoreStats `json:"quality_by_dimension"`
	TopPerformingTools []ToolRanking         `json:"top_performing_tools"`
}
