package testgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

type rawCase struct {
	Arguments        map[string]any `json:"arguments"`
	Description      string         `json:"description"`
	ExpectedBehavior string         `json:"expected_behavior"`
	Difficulty       string         `json:"difficulty"`
}

// parseCaseList extracts a list of test cases from model output. The model
// is asked for a bare JSON array but routinely wraps it in markdown fences
// or an enclosing object; both are tolerated, and structurally broken JSON
// gets one repair pass before we give up.
func parseCaseList(content string) ([]rawCase, error) {
	content = stripFences(content)
	if content == "" {
		return nil, fmt.Errorf("empty model output")
	}

	cases, err := decodeCaseList(content)
	if err == nil {
		return cases, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return nil, fmt.Errorf("decode cases: %w (repair also failed: %v)", err, repairErr)
	}
	return decodeCaseList(repaired)
}

func decodeCaseList(content string) ([]rawCase, error) {
	var cases []rawCase
	if err := json.Unmarshal([]byte(content), &cases); err == nil {
		return cases, nil
	}

	// Some models return {"test_cases": [...]} or a single-key object
	// wrapping the array despite instructions.
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return nil, fmt.Errorf("output is neither an array nor an object: %w", err)
	}
	if raw, ok := wrapper["test_cases"]; ok {
		if err := json.Unmarshal(raw, &cases); err != nil {
			return nil, fmt.Errorf("decode test_cases field: %w", err)
		}
		return cases, nil
	}
	if len(wrapper) == 1 {
		for _, raw := range wrapper {
			if err := json.Unmarshal(raw, &cases); err != nil {
				return nil, fmt.Errorf("decode wrapped array: %w", err)
			}
			return cases, nil
		}
	}
	return nil, fmt.Errorf("object output has no test case array")
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
