package testgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"toolgauge/internal/schema"
)

func renderSchema(s schema.ToolSchema) string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", s)
	}
	return string(data)
}

const caseListFormat = `Return ONLY a JSON array of test cases with this structure:
[
  {
    "arguments": {"param1": "value1", "param2": 2},
    "description": "what this test exercises",
    "expected_behavior": "what a correct response should contain",
    "difficulty": "easy"
  }
]`

func realisticPrompt(s schema.ToolSchema, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d realistic test cases for an MCP tool.\n\n", count)
	fmt.Fprintf(&b, "Tool Name: %s\nDescription: %s\nParameter Schema:\n%s\n\n",
		s.Name, s.Description, renderSchema(s))
	b.WriteString(`Create test cases that represent real-world usage scenarios. For each case
provide realistic parameter values a user would actually supply, a short
description of the scenario, the behavior a correct response would show, and
a difficulty level (easy/medium/hard).

Reason over the parameter names and descriptions, not just their types:
values should make sense for what the tool does. Every case must satisfy the
schema exactly (correct types, all required parameters present).

`)
	b.WriteString(caseListFormat)
	return b.String()
}

func edgeCasePrompt(s schema.ToolSchema, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d edge-case test scenarios for an MCP tool.\n\n", count)
	fmt.Fprintf(&b, "Tool Name: %s\nDescription: %s\nParameter Schema:\n%s\n\n",
		s.Name, s.Description, renderSchema(s))
	b.WriteString(`Create cases that probe boundary conditions while remaining VALID under the
schema: empty strings, zero and negative numbers, minimum/maximum values,
empty arrays, very long but legal strings, unicode and special characters.

`)
	b.WriteString(caseListFormat)
	return b.String()
}

func invalidPrompt(s schema.ToolSchema, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d invalid test cases for an MCP tool to exercise its input validation.\n\n", count)
	fmt.Fprintf(&b, "Tool Name: %s\nDescription: %s\nParameter Schema:\n%s\n\n",
		s.Name, s.Description, renderSchema(s))
	b.WriteString(`Each case must VIOLATE the schema in at least one way: a wrong data type, a
missing required parameter, an out-of-range number, or an undeclared enum
value. The tool should reject these inputs with a clear error.

`)
	b.WriteString(caseListFormat)
	return b.String()
}

func stressPrompt(s schema.ToolSchema, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d stress test cases for an MCP tool.\n\n", count)
	fmt.Fprintf(&b, "Tool Name: %s\nDescription: %s\nParameter Schema:\n%s\n\n",
		s.Name, s.Description, renderSchema(s))
	b.WriteString(`Create schema-valid inputs sized to exercise resource limits: very long
strings (1000+ characters), large arrays, maximum numeric values, high
repeat or result counts. Inputs stay legal; only their size is extreme.

`)
	b.WriteString(caseListFormat)
	return b.String()
}
