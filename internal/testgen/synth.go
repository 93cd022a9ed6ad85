package testgen

import (
	"fmt"
	"strings"

	"toolgauge/internal/schema"
)

// Deterministic, schema-derived case synthesis. These back the generator up
// when the oracle is unavailable or returns fewer usable cases than planned,
// so generation can always honor its contract without a model call.

func synthValue(p schema.Parameter) any {
	if len(p.Enum) > 0 {
		return p.Enum[0]
	}
	switch p.Type {
	case "string":
		return "test"
	case "number", "integer":
		if p.Minimum != nil {
			return *p.Minimum
		}
		return float64(1)
	case "boolean":
		return true
	case "array":
		return []any{}
	case "object":
		return map[string]any{}
	default:
		return "test"
	}
}

func synthEdgeValue(p schema.Parameter) any {
	if len(p.Enum) > 0 {
		return p.Enum[len(p.Enum)-1]
	}
	switch p.Type {
	case "string":
		return ""
	case "number", "integer":
		if p.Minimum != nil {
			return *p.Minimum
		}
		return float64(0)
	case "boolean":
		return false
	case "array":
		return []any{}
	case "object":
		return map[string]any{}
	default:
		return ""
	}
}

func synthStressValue(p schema.Parameter) any {
	if len(p.Enum) > 0 {
		return p.Enum[0]
	}
	switch p.Type {
	case "string":
		return strings.Repeat("stress payload ", 80)
	case "number", "integer":
		if p.Maximum != nil {
			return *p.Maximum
		}
		return float64(1000000)
	case "boolean":
		return true
	case "array":
		items := make([]any, 100)
		for i := range items {
			items[i] = fmt.Sprintf("item-%d", i)
		}
		return items
	case "object":
		return map[string]any{"payload": strings.Repeat("x", 500)}
	default:
		return strings.Repeat("stress payload ", 80)
	}
}

func requiredArguments(s schema.ToolSchema, value func(schema.Parameter) any) map[string]any {
	args := map[string]any{}
	for _, p := range s.RequiredParameters() {
		args[p.Name] = value(p)
	}
	return args
}

func synthRealisticCase(s schema.ToolSchema) TestCase {
	return TestCase{
		TestType:         TestTypeRealistic,
		Arguments:        requiredArguments(s, synthValue),
		Description:      fmt.Sprintf("Basic functionality test for %s", s.Name),
		ExpectedBehavior: "Should execute successfully with minimal valid input",
		Difficulty:       DifficultyEasy,
	}
}

func synthEdgeCase(s schema.ToolSchema) TestCase {
	return TestCase{
		TestType:         TestTypeEdgeCase,
		Arguments:        requiredArguments(s, synthEdgeValue),
		Description:      fmt.Sprintf("Boundary-value test for %s", s.Name),
		ExpectedBehavior: "Should handle boundary values gracefully without crashing",
		Difficulty:       DifficultyMedium,
	}
}

func synthStressCase(s schema.ToolSchema) TestCase {
	return TestCase{
		TestType:         TestTypeStressTest,
		Arguments:        requiredArguments(s, synthStressValue),
		Description:      fmt.Sprintf("Oversized-input stress test for %s", s.Name),
		ExpectedBehavior: "Should handle the large request efficiently or report a sensible limit",
		Difficulty:       DifficultyHard,
	}
}

// synthMissingRequiredCase drops the first required parameter. Returns false
// when the schema declares no required parameters, in which case a
// missing-field violation cannot be constructed.
func synthMissingRequiredCase(s schema.ToolSchema) (TestCase, bool) {
	required := s.RequiredParameters()
	if len(required) == 0 {
		return TestCase{}, false
	}
	args := requiredArguments(s, synthValue)
	omitted := required[0].Name
	delete(args, omitted)
	return TestCase{
		TestType:         TestTypeInvalid,
		Arguments:        args,
		Description:      fmt.Sprintf("Omit required parameter %q", omitted),
		ExpectedBehavior: "Should return a validation error naming the missing parameter",
		Difficulty:       DifficultyMedium,
	}, true
}

// synthWrongTypeCase swaps one declared parameter's value for a mistyped one.
func synthWrongTypeCase(s schema.ToolSchema) (TestCase, bool) {
	if len(s.Parameters) == 0 {
		return TestCase{}, false
	}
	args := requiredArguments(s, synthValue)
	target := s.Parameters[0]
	if target.Type == "string" {
		args[target.Name] = float64(12345)
	} else {
		args[target.Name] = "not-a-" + target.Type
	}
	return TestCase{
		TestType:         TestTypeInvalid,
		Arguments:        args,
		Description:      fmt.Sprintf("Wrong type for parameter %q", target.Name),
		ExpectedBehavior: "Should return a validation error describing the type mismatch",
		Difficulty:       DifficultyMedium,
	}, true
}

// degenerateCase is the last-resort realistic case for schemas with no
// usable parameters: generation never fails for a structurally valid schema.
func degenerateCase(s schema.ToolSchema) TestCase {
	return TestCase{
		TestType:         TestTypeRealistic,
		Arguments:        map[string]any{},
		Description:      fmt.Sprintf("Zero-argument invocation of %s", s.Name),
		ExpectedBehavior: "Should respond without arguments or report that arguments are required",
		Difficulty:       DifficultyEasy,
	}
}
