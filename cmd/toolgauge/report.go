package main

import (
	"sort"

	"github.com/spf13/cobra"

	"toolgauge/internal/report"
)

func newReportCommand() *cobra.Command {
	var (
		recordsPath string
		repoName    string
		analytics   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate assessment records into reports and a leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var records []report.Record
			if err := readJSONFile(recordsPath, &records); err != nil {
				return err
			}

			aggregator := report.NewAggregator(cfg.Report)

			if repoName != "" {
				return writeJSON(aggregator.RepositoryReport(repoName, records))
			}
			if analytics {
				return writeJSON(aggregator.Analytics(records))
			}

			repos := map[string]bool{}
			for _, r := range records {
				repos[r.Repository] = true
			}
			names := make([]string, 0, len(repos))
			for name := range repos {
				names = append(names, name)
			}
			sort.Strings(names)

			reports := make([]report.RepositoryQualityReport, 0, len(names))
			for _, name := range names {
				reports = append(reports, aggregator.RepositoryReport(name, records))
			}
			return writeJSON(aggregator.Leaderboard(reports))
		},
	}

	cmd.Flags().StringVar(&recordsPath, "records", "", "JSON file with assessment records")
	cmd.Flags().StringVar(&repoName, "repo", "", "report on a single repository instead of the leaderboard")
	cmd.Flags().BoolVar(&analytics, "analytics", false, "emit cross-repository analytics instead of the leaderboard")
	_ = cmd.MarkFlagRequired("records")
	return cmd
}
