// toolgauge evaluates the behavioral quality of MCP tools: it synthesizes
// test cases from a tool's parameter schema, scores recorded invocation
// results against a weighted rubric, and rolls assessments up into
// repository reports and leaderboards.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
