// Package report reduces assessment records into per-tool summaries,
// per-repository reports, and cross-repository leaderboards and analytics.
// Every function here is a pure reduction over its input records; empty
// scopes produce nil averages, never errors.
package report

import (
	"sort"

	"toolgauge/internal/assess"
	"toolgauge/internal/config"
	"toolgauge/internal/testgen"
)

// Aggregator computes rollups with fixed reporting settings.
type Aggregator struct {
	cfg config.ReportConfig
}

// NewAggregator constructs an Aggregator.
func NewAggregator(cfg config.ReportConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Tier buckets an overall score using the configured monotonic thresholds.
func (ag *Aggregator) Tier(score float64) Tier {
	t := ag.cfg.Tiers
	switch {
	case score >= t.Excellent:
		return TierExcellent
	case score >= t.Good:
		return TierGood
	case score >= t.Fair:
		return TierFair
	default:
		return TierPoor
	}
}

// ToolSummary rolls up every record for the named tool. Records for other
// tools are ignored so callers can pass an unfiltered scope.
func (ag *Aggregator) ToolSummary(tool string, records []Record) ToolQualitySummary {
	summary := ToolQualitySummary{Tool: tool}
	var total float64
	for _, r := range records {
		if r.Tool != tool {
			continue
		}
		summary.TestCount++
		total += r.Assessment.OverallScore
		if !r.Assessment.IsErrorResponse {
			summary.SuccessCount++
		}
	}
	if summary.TestCount > 0 {
		avg := total / float64(summary.TestCount)
		summary.AverageQuality = &avg
	}
	return summary
}

// RepositoryReport rolls up every record for the named repository.
func (ag *Aggregator) RepositoryReport(repository string, records []Record) RepositoryQualityReport {
	scoped := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Repository == repository {
			scoped = append(scoped, r)
		}
	}

	rep := RepositoryQualityReport{
		Repository:           repository,
		ToolQualitySummaries: map[string]ToolQualitySummary{},
		QualityInsights: QualityInsights{
			ByTestType:             map[testgen.TestType]TestTypeInsight{},
			CommonStrengths:        []string{},
			CommonWeaknesses:       []string{},
			ImprovementSuggestions: []string{},
		},
	}
	if len(scoped) == 0 {
		return rep
	}

	rep.TestCount = len(scoped)
	rep.ScoreStats = overallStats(scoped)
	mean := rep.ScoreStats.Mean
	rep.OverallQualityScore = &mean

	for _, r := range scoped {
		if r.Assessment.IsErrorResponse {
			rep.ErrorCount++
		} else {
			rep.SuccessCount++
		}
	}

	rep.QualityBreakdown = dimensionMeans(scoped)

	for tool := range toolSet(scoped) {
		rep.ToolQualitySummaries[tool] = ag.ToolSummary(tool, scoped)
	}

	rep.QualityInsights.ByTestType = byTestType(scoped)
	rep.QualityInsights.CommonStrengths = ag.commonThemes(scoped, func(a assess.QualityAssessment) []string { return a.Strengths })
	rep.QualityInsights.CommonWeaknesses = ag.commonThemes(scoped, func(a assess.QualityAssessment) []string { return a.Weaknesses })
	rep.QualityInsights.ImprovementSuggestions = ag.commonThemes(scoped, func(a assess.QualityAssessment) []string { return a.Suggestions })

	return rep
}

// Leaderboard ranks the given repository reports by quality, descending.
// Equal scores rank the more-tested repository first; remaining ties order
// by name so ranking is stable across runs.
func (ag *Aggregator) Leaderboard(reports []RepositoryQualityReport) Leaderboard {
	entries := make([]LeaderboardEntry, 0, len(reports))
	for _, rep := range reports {
		if rep.OverallQualityScore == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Repository:   rep.Repository,
			QualityScore: *rep.OverallQualityScore,
			TestCount:    rep.TestCount,
			Tier:         ag.Tier(*rep.OverallQualityScore),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].QualityScore != entries[j].QualityScore {
			return entries[i].QualityScore > entries[j].QualityScore
		}
		if entries[i].TestCount != entries[j].TestCount {
			return entries[i].TestCount > entries[j].TestCount
		}
		return entries[i].Repository < entries[j].Repository
	})

	stats := LeaderboardStatistics{
		Repositories: len(entries),
		Distribution: map[Tier]int{},
	}
	if len(entries) > 0 {
		var total float64
		stats.HighestQuality = entries[0].QualityScore
		stats.LowestQuality = entries[0].QualityScore
		for _, e := range entries {
			total += e.QualityScore
			if e.QualityScore > stats.HighestQuality {
				stats.HighestQuality = e.QualityScore
			}
			if e.QualityScore < stats.LowestQuality {
				stats.LowestQuality = e.QualityScore
			}
			stats.Distribution[e.Tier]++
		}
		stats.AverageQuality = total / float64(len(entries))
	}

	return Leaderboard{Entries: entries, Statistics: stats}
}

// Analytics computes the cross-repository view: overall score statistics,
// per-dimension statistics over non-error assessments, and a ranking of the
// best-scoring tools across all repositories.
func (ag *Aggregator) Analytics(records []Record) Analytics {
	analytics := Analytics{
		QualityByDimension: map[string]ScoreStats{},
		TopPerformingTools: []ToolRanking{},
	}
	if len(records) == 0 {
		return analytics
	}

	analytics.OverallQuality = *overallStats(records)

	for name, pick := range dimensionAccessors() {
		var scores []float64
		for _, r := range records {
			if r.Assessment.Dimensions != nil {
				scores = append(scores, pick(*r.Assessment.Dimensions))
			}
		}
		if len(scores) > 0 {
			analytics.QualityByDimension[name] = stats(scores)
		}
	}

	type toolAgg struct {
		scores []float64
		repos  map[string]bool
	}
	perTool := map[string]*toolAgg{}
	for _, r := range records {
		agg := perTool[r.Tool]
		if agg == nil {
			agg = &toolAgg{repos: map[string]bool{}}
			perTool[r.Tool] = agg
		}
		agg.scores = append(agg.scores, r.Assessment.OverallScore)
		agg.repos[r.Repository] = true
	}
	for tool, agg := range perTool {
		s := stats(agg.scores)
		analytics.TopPerformingTools = append(analytics.TopPerformingTools, ToolRanking{
			Tool:            tool,
			AverageQuality:  s.Mean,
			RepositoryCount: len(agg.repos),
			MinQuality:      s.Min,
			MaxQuality:      s.Max,
		})
	}
	sort.SliceStable(analytics.TopPerformingTools, func(i, j int) bool {
		ti, tj := analytics.TopPerformingTools[i], analytics.TopPerformingTools[j]
		if ti.AverageQuality != tj.AverageQuality {
			return ti.AverageQuality > tj.AverageQuality
		}
		return ti.Tool < tj.Tool
	})
	if len(analytics.TopPerformingTools) > maxRankedTools {
		analytics.TopPerformingTools = analytics.TopPerformingTools[:maxRankedTools]
	}

	return analytics
}

const maxRankedTools = 15

// commonThemes frequency-counts the distinct strings pick extracts from each
// assessment and returns the most frequent. Duplicates within a single
// assessment count once; comparison is case-sensitive. Ties order
// lexicographically so reports are reproducible.
func (ag *Aggregator) commonThemes(records []Record, pick func(assess.QualityAssessment) []string) []string {
	counts := map[string]int{}
	for _, r := range records {
		seen := map[string]bool{}
		for _, item := range pick(r.Assessment) {
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			counts[item]++
		}
	}

	themes := make([]string, 0, len(counts))
	for theme := range counts {
		themes = append(themes, theme)
	}
	sort.Slice(themes, func(i, j int) bool {
		if counts[themes[i]] != counts[themes[j]] {
			return counts[themes[i]] > counts[themes[j]]
		}
		return themes[i] < themes[j]
	})

	limit := ag.cfg.TopCommonThemes
	if limit <= 0 {
		limit = 5
	}
	if len(themes) > limit {
		themes = themes[:limit]
	}
	return themes
}

func overallStats(records []Record) *ScoreStats {
	scores := make([]float64, 0, len(records))
	for _, r := range records {
		scores = append(scores, r.Assessment.OverallScore)
	}
	if len(scores) == 0 {
		return nil
	}
	s := stats(scores)
	return &s
}

func stats(scores []float64) ScoreStats {
	s := ScoreStats{Count: len(scores), Min: scores[0], Max: scores[0]}
	var total float64
	for _, score := range scores {
		total += score
		if score < s.Min {
			s.Min = score
		}
		if score > s.Max {
			s.Max = score
		}
	}
	s.Mean = total / float64(len(scores))
	return s
}

// dimensionMeans averages each dimension over the non-error assessments.
// Error assessments carry no dimensions and are excluded by construction.
func dimensionMeans(records []Record) *assess.DimensionScores {
	var sum assess.DimensionScores
	var n int
	for _, r := range records {
		d := r.Assessment.Dimensions
		if d == nil {
			continue
		}
		n++
		sum.Relevance += d.Relevance
		sum.Accuracy += d.Accuracy
		sum.Completeness += d.Completeness
		sum.Usability += d.Usability
		sum.Format += d.Format
	}
	if n == 0 {
		return nil
	}
	return &assess.DimensionScores{
		Relevance:    sum.Relevance / float64(n),
		Accuracy:     sum.Accuracy / float64(n),
		Completeness: sum.Completeness / float64(n),
		Usability:    sum.Usability / float64(n),
		Format:       sum.Format / float64(n),
	}
}

func dimensionAccessors() map[string]func(assess.DimensionScores) float64 {
	return map[string]func(assess.DimensionScores) float64{
		"relevance":    func(d assess.DimensionScores) float64 { return d.Relevance },
		"accuracy":     func(d assess.DimensionScores) float64 { return d.Accuracy },
		"completeness": func(d assess.DimensionScores) float64 { return d.Completeness },
		"usability":    func(d assess.DimensionScores) float64 { return d.Usability },
		"format":       func(d assess.DimensionScores) float64 { return d.Format },
	}
}

func byTestType(records []Record) map[testgen.TestType]TestTypeInsight {
	sums := map[testgen.TestType]float64{}
	counts := map[testgen.TestType]int{}
	for _, r := range records {
		sums[r.TestType] += r.Assessment.OverallScore
		counts[r.TestType]++
	}
	insights := make(map[testgen.TestType]TestTypeInsight, len(counts))
	for testType, count := range counts {
		insights[testType] = TestTypeInsight{
			Count:      count,
			AvgQuality: sums[testType] / float64(count),
		}
	}
	return insights
}

func toolSet(records []Record) map[string]bool {
	tools := map[string]bool{}
	for _, r := range records {
		tools[r.Tool] = true
	}
	return tools
}
