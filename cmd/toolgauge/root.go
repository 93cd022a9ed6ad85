package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toolgauge/internal/config"
)

var (
	configPath string
	outPath    string
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "toolgauge",
		Short: "Behavioral quality evaluation for MCP tools",
		Long: `toolgauge generates invocation test cases from MCP tool schemas, scores
recorded tool responses with an LLM oracle against a weighted rubric, and
aggregates the assessments into repository reports and leaderboards.

Tool invocation itself is external: feed recorded results in, get scored
assessments and reports out.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML evaluation config")
	root.PersistentFlags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newAssessCommand())
	root.AddCommand(newReportCommand())
	return root
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')
	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0644)
}
