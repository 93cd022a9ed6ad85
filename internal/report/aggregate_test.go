package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"toolgauge/internal/assess"
	"toolgauge/internal/config"
	"toolgauge/internal/testgen"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(config.Default().Report)
}

// successRecord builds a record whose five dimensions all carry score, so
// its overall equals score exactly.
func successRecord(repo, tool string, score float64, themes ...string) Record {
	a, err := assess.NewSuccessAssessment(assess.DimensionScores{
		Relevance:    score,
		Accuracy:     score,
		Completeness: score,
		Usability:    score,
		Format:       score,
	}, "test", themes, themes, themes)
	if err != nil {
		panic(err)
	}
	return Record{Repository: repo, Tool: tool, TestType: testgen.TestTypeRealistic, Assessment: a}
}

func errorRecord(repo, tool string, quality float64) Record {
	a, err := assess.NewErrorAssessment(quality, "test", nil, nil, nil)
	if err != nil {
		panic(err)
	}
	return Record{Repository: repo, Tool: tool, TestType: testgen.TestTypeInvalid, Assessment: a}
}

func TestToolSummary(t *testing.T) {
	records := []Record{
		successRecord("repo-a", "search", 9),
		successRecord("repo-a", "search", 8),
		successRecord("repo-a", "search", 7),
		errorRecord("repo-a", "search", 6),
		successRecord("repo-a", "search", 10),
		successRecord("repo-a", "other_tool", 1), // out of scope
	}

	summary := newTestAggregator().ToolSummary("search", records)
	require.Equal(t, "search", summary.Tool)
	require.Equal(t, 5, summary.TestCount)
	require.Equal(t, 4, summary.SuccessCount)
	require.NotNil(t, summary.AverageQuality)
	require.InDelta(t, 8.0, *summary.AverageQuality, 1e-6)
}

func TestToolSummaryEmptyScope(t *testing.T) {
	summary := newTestAggregator().ToolSummary("absent", nil)
	require.Zero(t, summary.TestCount)
	require.Nil(t, summary.AverageQuality)
}

func TestRepositoryReport(t *testing.T) {
	records := []Record{
		successRecord("repo-a", "search", 9, "fast"),
		successRecord("repo-a", "search", 7, "fast"),
		errorRecord("repo-a", "search", 5),
		successRecord("repo-a", "convert", 8, "fast"),
		successRecord("repo-b", "search", 2), // other repository
	}

	rep := newTestAggregator().RepositoryReport("repo-a", records)
	require.Equal(t, "repo-a", rep.Repository)
	require.Equal(t, 4, rep.TestCount)
	require.Equal(t, 3, rep.SuccessCount)
	require.Equal(t, 1, rep.ErrorCount)

	require.NotNil(t, rep.OverallQualityScore)
	require.InDelta(t, (9+7+5+8)/4.0, *rep.OverallQualityScore, 1e-6)

	require.NotNil(t, rep.ScoreStats)
	require.Equal(t, 4, rep.ScoreStats.Count)
	require.Equal(t, 5.0, rep.ScoreStats.Min)
	require.Equal(t, 9.0, rep.ScoreStats.Max)

	// Dimension breakdown averages only non-error assessments.
	require.NotNil(t, rep.QualityBreakdown)
	require.InDelta(t, (9+7+8)/3.0, rep.QualityBreakdown.Relevance, 1e-6)

	require.Len(t, rep.ToolQualitySummaries, 2)
	search := rep.ToolQualitySummaries["search"]
	require.Equal(t, 3, search.TestCount)
	require.InDelta(t, (9+7+5)/3.0, *search.AverageQuality, 1e-6)

	byType := rep.QualityInsights.ByTestType
	require.Equal(t, 3, byType[testgen.TestTypeRealistic].Count)
	require.Equal(t, 1, byType[testgen.TestTypeInvalid].Count)
	require.InDelta(t, 5.0, byType[testgen.TestTypeInvalid].AvgQuality, 1e-6)

	require.Contains(t, rep.QualityInsights.CommonStrengths, "fast")
}

func TestRepositoryReportEmptyScope(t *testing.T) {
	rep := newTestAggregator().RepositoryReport("ghost", nil)
	require.Equal(t, "ghost", rep.Repository)
	require.Zero(t, rep.TestCount)
	require.Nil(t, rep.OverallQualityScore)
	require.Nil(t, rep.QualityBreakdown)
	require.Nil(t, rep.ScoreStats)
	require.NotNil(t, rep.ToolQualitySummaries)
	require.NotNil(t, rep.QualityInsights.CommonStrengths)
}

func TestAggregationIsIdempotent(t *testing.T) {
	// Every rollup is a pure reduction: running it twice over the same
	// fixed records yields identical output, ties and theme ordering
	// included.
	records := []Record{
		successRecord("repo-a", "search", 9, "fast", "accurate"),
		errorRecord("repo-a", "search", 4),
		successRecord("repo-a", "convert", 6, "fast"),
		successRecord("repo-b", "search", 6, "fast"),
		successRecord("repo-b", "convert", 9, "accurate"),
	}
	ag := newTestAggregator()

	require.Equal(t, ag.ToolSummary("search", records), ag.ToolSummary("search", records))
	require.Equal(t, ag.RepositoryReport("repo-a", records), ag.RepositoryReport("repo-a", records))
	require.Equal(t, ag.Analytics(records), ag.Analytics(records))

	reports := []RepositoryQualityReport{
		ag.RepositoryReport("repo-a", records),
		ag.RepositoryReport("repo-b", records),
	}
	require.Equal(t, ag.Leaderboard(reports), ag.Leaderboard(reports))
}

func TestLeaderboardOrdering(t *testing.T) {
	ag := newTestAggregator()

	reports := []RepositoryQualityReport{
		makeReport("mid", 8.0, 3),
		makeReport("low", 4.2, 6),
		makeReport("top", 9.4, 2),
		makeReport("mid-heavy", 8.0, 10), // same score, more tests
		{Repository: "unassessed"},      // no score, excluded
	}

	lb := ag.Leaderboard(reports)
	require.Len(t, lb.Entries, 4)
	require.Equal(t, "top", lb.Entries[0].Repository)
	// Equal scores: the more-tested repository ranks first.
	require.Equal(t, "mid-heavy", lb.Entries[1].Repository)
	require.Equal(t, "mid", lb.Entries[2].Repository)
	require.Equal(t, "low", lb.Entries[3].Repository)

	require.Equal(t, TierExcellent, lb.Entries[0].Tier)
	require.Equal(t, TierGood, lb.Entries[1].Tier)
	require.Equal(t, TierPoor, lb.Entries[3].Tier)

	require.Equal(t, 4, lb.Statistics.Repositories)
	require.Equal(t, 9.4, lb.Statistics.HighestQuality)
	require.Equal(t, 4.2, lb.Statistics.LowestQuality)
	require.InDelta(t, (8.0+4.2+9.4+8.0)/4.0, lb.Statistics.AverageQuality, 1e-6)
	require.Equal(t, map[Tier]int{TierExcellent: 1, TierGood: 2, TierPoor: 1}, lb.Statistics.Distribution)
}

func TestLeaderboardNameTieBreak(t *testing.T) {
	lb := newTestAggregator().Leaderboard([]RepositoryQualityReport{
		makeReport("zeta", 7.0, 5),
		makeReport("alpha", 7.0, 5),
	})
	require.Equal(t, "alpha", lb.Entries[0].Repository)
	require.Equal(t, "zeta", lb.Entries[1].Repository)
}

func TestLeaderboardEmpty(t *testing.T) {
	lb := newTestAggregator().Leaderboard(nil)
	require.Empty(t, lb.Entries)
	require.Zero(t, lb.Statistics.Repositories)
}

func makeReport(repo string, score float64, testCount int) RepositoryQualityReport {
	return RepositoryQualityReport{
		Repository:          repo,
		OverallQualityScore: &score,
		TestCount:           testCount,
	}
}

func TestTierThresholds(t *testing.T) {
	ag := newTestAggregator()
	require.Equal(t, TierExcellent, ag.Tier(9.0))
	require.Equal(t, TierExcellent, ag.Tier(10.0))
	require.Equal(t, TierGood, ag.Tier(8.99))
	require.Equal(t, TierGood, ag.Tier(7.0))
	require.Equal(t, TierFair, ag.Tier(5.0))
	require.Equal(t, TierPoor, ag.Tier(4.99))
	require.Equal(t, TierPoor, ag.Tier(0))
}

func TestCommonThemes(t *testing.T) {
	records := []Record{
		// "slow" repeated within one assessment counts once for it.
		successRecord("r", "t", 8, "slow", "slow", "verbose"),
		successRecord("r", "t", 7, "slow"),
		successRecord("r", "t", 6, "verbose"),
		successRecord("r", "t", 5, "awkward"),
	}

	themes := newTestAggregator().commonThemes(records, func(a assess.QualityAssessment) []string {
		return a.Weaknesses
	})
	// slow and verbose tie at 2 and order lexicographically; awkward trails.
	require.Equal(t, []string{"slow", "verbose", "awkward"}, themes)
}

func TestCommonThemesCapped(t *testing.T) {
	records := []Record{
		successRecord("r", "t", 8, "a", "b", "c", "d", "e", "f", "g"),
	}
	themes := newTestAggregator().commonThemes(records, func(a assess.QualityAssessment) []string {
		return a.Weaknesses
	})
	require.Len(t, themes, 5)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, themes)
}

func TestAnalytics(t *testing.T) {
	records := []Record{
		successRecord("repo-a", "search", 9),
		successRecord("repo-a", "convert", 5),
		successRecord("repo-b", "search", 7),
		errorRecord("repo-b", "convert", 4),
	}

	analytics := newTestAggregator().Analytics(records)

	require.Equal(t, 4, analytics.OverallQuality.Count)
	require.InDelta(t, (9+5+7+4)/4.0, analytics.OverallQuality.Mean, 1e-6)
	require.Equal(t, 4.0, analytics.OverallQuality.Min)
	require.Equal(t, 9.0, analytics.OverallQuality.Max)

	// Dimension statistics cover only the three success assessments.
	relevance := analytics.QualityByDimension["relevance"]
	require.Equal(t, 3, relevance.Count)
	require.InDelta(t, (9+5+7)/3.0, relevance.Mean, 1e-6)
	require.Len(t, analytics.QualityByDimension, 5)

	require.Len(t, analytics.TopPerformingTools, 2)
	require.Equal(t, "search", analytics.TopPerformingTools[0].Tool)
	require.InDelta(t, 8.0, analytics.TopPerformingTools[0].AverageQuality, 1e-6)
	require.Equal(t, 2, analytics.TopPerformingTools[0].RepositoryCount)
	require.Equal(t, "convert", analytics.TopPerformingTools[1].Tool)
	require.InDelta(t, 4.5, analytics.TopPerformingTools[1].AverageQuality, 1e-6)
}

func TestAnalyticsEmpty(t *testing.T) {
	analytics := newTestAggregator().Analytics(nil)
	require.Zero(t, analytics.OverallQuality.Count)
	require.Empty(t, analytics.QualityByDimension)
	require.Empty(t, analytics.TopPerformingTools)
}
