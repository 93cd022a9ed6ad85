package assess

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"toolgauge/internal/testgen"
)

const truncationMarker = "\n... [response truncated for analysis]"

// truncateResponse bounds the payload shown to the oracle. Truncation, not
// summarization: the cost cap must be deterministic. The cut never splits a
// UTF-8 rune, so the oracle never sees a mangled tail.
func truncateResponse(response string, maxChars int) string {
	if len(response) <= maxChars {
		return response
	}
	cut := maxChars - len(truncationMarker)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(response[cut]) {
		cut--
	}
	return response[:cut] + truncationMarker
}

func renderArguments(args map[string]any) string {
	data, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return string(data)
}

func successPrompt(toolName, toolDescription string, tc testgen.TestCase, response string) string {
	var b strings.Builder
	b.WriteString("Assess the quality of this MCP tool response on a 0-10 scale for each dimension.\n\n")
	fmt.Fprintf(&b, "TOOL:\nName: %s\nDescription: %s\nTest: %s\n\n", toolName, toolDescription, tc.Description)
	fmt.Fprintf(&b, "INPUT:\nArguments: %s\nExpected behavior: %s\n\n", renderArguments(tc.Arguments), tc.ExpectedBehavior)
	fmt.Fprintf(&b, "ACTUAL RESPONSE:\n%s\n\n", response)
	b.WriteString(`Evaluate these dimensions (0-10):
1. RELEVANCE: how well the response addresses the request
2. ACCURACY: how accurate and correct the information appears
3. COMPLETENESS: whether the response includes the expected information
4. USABILITY: how useful and actionable the response is for a user
5. FORMAT: how well-structured the response is

Also provide specific strengths, areas for improvement, concrete
suggestions, and a 2-3 sentence overall explanation.

Respond ONLY with this JSON structure:
{
  "relevance_score": 8.5,
  "accuracy_score": 9.0,
  "completeness_score": 7.5,
  "usability_score": 8.0,
  "format_score": 9.0,
  "explanation": "...",
  "strengths": ["..."],
  "weaknesses": ["..."],
  "suggestions": ["..."]
}`)
	return b.String()
}

func errorPrompt(toolName, toolDescription string, tc testgen.TestCase, response string) string {
	var b strings.Builder
	b.WriteString("Assess the quality of this MCP tool ERROR response.\n\n")
	fmt.Fprintf(&b, "TOOL:\nName: %s\nDescription: %s\nTest: %s\n\n", toolName, toolDescription, tc.Description)
	fmt.Fprintf(&b, "INPUT:\nArguments: %s\nExpected behavior: %s\n\n", renderArguments(tc.Arguments), tc.ExpectedBehavior)
	fmt.Fprintf(&b, "ERROR RESPONSE:\n%s\n\n", response)
	b.WriteString(`Rate the error handling (0-10 each):
1. CLARITY: how clear and understandable the error message is
2. HELPFULNESS: whether it explains what went wrong
3. ACTIONABILITY: whether it suggests how to fix the problem

Respond ONLY with this JSON structure:
{
  "clarity_score": 7.5,
  "helpfulness_score": 6.0,
  "actionability_score": 5.0,
  "explanation": "...",
  "strengths": ["..."],
  "weaknesses": ["..."],
  "suggestions": ["..."]
}`)
	return b.String()
}
