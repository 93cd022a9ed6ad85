package main

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"toolgauge/internal/config"
	tgerrors "toolgauge/internal/errors"
	"toolgauge/internal/llm"
	"toolgauge/internal/logging"
	"toolgauge/internal/schema"
	"toolgauge/internal/testgen"
)

// toolsFile accepts either a bare array of tools or the object form an MCP
// tools/list call returns.
type toolsFile struct {
	Tools []mcp.Tool `json:"tools"`
}

func newGenerateCommand() *cobra.Command {
	var (
		toolsPath string
		maxCases  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test cases for the tools in a tools/list payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var file toolsFile
			if err := readJSONFile(toolsPath, &file); err != nil {
				// Retry as a bare array.
				if arrErr := readJSONFile(toolsPath, &file.Tools); arrErr != nil {
					return err
				}
			}
			if len(file.Tools) == 0 {
				return fmt.Errorf("no tools found in %s", toolsPath)
			}

			logger := logging.NewComponentLogger("generate")
			client, err := buildClient(cfg.LLM, cfg.Retry, logger)
			if err != nil {
				return err
			}
			generator := testgen.NewGenerator(client, cfg.Generation, logger)

			if maxCases <= 0 {
				maxCases = cfg.Generation.MaxCases
			}

			cases := map[string][]testgen.TestCase{}
			for _, tool := range file.Tools {
				s := schema.FromMCPTool(tool)
				cases[s.Name] = generator.Generate(cmd.Context(), s, maxCases)
			}
			return writeJSON(cases)
		},
	}

	cmd.Flags().StringVar(&toolsPath, "tools", "", "JSON file with the tool declarations (tools/list output)")
	cmd.Flags().IntVar(&maxCases, "max-cases", 0, "cases per tool (default from config)")
	_ = cmd.MarkFlagRequired("tools")
	return cmd
}

func buildClient(llmCfg llm.Config, retryCfg config.RetryConfig, logger logging.Logger) (llm.Client, error) {
	base, err := llm.NewOpenAIClient(llmCfg, logger)
	if err != nil {
		return nil, err
	}
	return llm.NewRetryClient(base, tgerrors.RetryConfig{
		MaxAttempts: retryCfg.MaxAttempts,
		BaseDelay:   time.Duration(retryCfg.BaseDelayMS) * time.Millisecond,
		MaxDelay:    time.Duration(retryCfg.MaxDelayMS) * time.Millisecond,
	}, time.Duration(retryCfg.TimeoutSecs)*time.Second, logger), nil
}
