package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolgauge/internal/assess"
	"toolgauge/internal/logging"
	"toolgauge/internal/report"
)

// toolRun groups the recorded invocation results for one tool of one
// repository. Invocation happens outside this program; a run is its
// replayable trace.
type toolRun struct {
	Repository      string                        `json:"repository"`
	Tool            string                        `json:"tool"`
	ToolDescription string                        `json:"tool_description"`
	Results         []assess.ToolInvocationResult `json:"results"`
}

func newAssessCommand() *cobra.Command {
	var resultsPath string

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score recorded invocation results against the quality rubric",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var runs []toolRun
			if err := readJSONFile(resultsPath, &runs); err != nil {
				return err
			}

			logger := logging.NewComponentLogger("assess")
			client, err := buildClient(cfg.LLM, cfg.Retry, logger)
			if err != nil {
				return err
			}

			records := make([]report.Record, 0)
			for _, run := range runs {
				if run.Tool == "" {
					return fmt.Errorf("run for repository %q is missing a tool name", run.Repository)
				}
				assessor := assess.NewAssessor(client, run.Tool, run.ToolDescription, cfg.Assessment, cfg.Retry, logger)
				assessments, err := assessor.AssessBatch(cmd.Context(), run.Results, cfg.Concurrency)
				if err != nil {
					// Cancelled mid-run. The partial batch comes back
					// compacted, so its entries can no longer be matched to
					// their test cases; keep the finished runs and stop.
					logger.Warn("assessment of %s/%s interrupted, dropping %d partial verdicts",
						run.Repository, run.Tool, len(assessments))
					if writeErr := writeJSON(records); writeErr != nil {
						return writeErr
					}
					return err
				}
				for i, a := range assessments {
					records = append(records, report.Record{
						Repository: run.Repository,
						Tool:       run.Tool,
						TestType:   run.Results[i].TestCase.TestType,
						Assessment: a,
					})
				}
			}
			return writeJSON(records)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "JSON file with recorded invocation results per tool")
	_ = cmd.MarkFlagRequired("results")
	return cmd
}
