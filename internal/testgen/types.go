package testgen

// TestType categorizes a generated test case.
type TestType string

const (
	// TestTypeRealistic exercises plausible real-world usage.
	TestTypeRealistic TestType = "realistic"
	// TestTypeEdgeCase probes schema-valid boundary inputs.
	TestTypeEdgeCase TestType = "edge_case"
	// TestTypeInvalid deliberately violates the schema to probe validation.
	TestTypeInvalid TestType = "invalid"
	// TestTypeStressTest uses schema-valid but oversized inputs.
	TestTypeStressTest TestType = "stress_test"
)

// Difficulty estimates how demanding a test case is for the tool.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// TestCase is one synthesized invocation of the tool under test. Instances
// are created once per generation call and never mutated afterwards.
type TestCase struct {
	TestType         TestType       `json:"test_type"`
	Arguments        map[string]any `json:"arguments"`
	Description      string         `json:"description"`
	ExpectedBehavior string         `json:"expected_behavior"`
	Difficulty       Difficulty     `json:"difficulty"`
}

func defaultDifficulty(testType TestType) Difficulty {
	switch testType {
	case TestTypeInvalid:
		return DifficultyMedium
	case TestTypeStressTest:
		return DifficultyHard
	case TestTypeEdgeCase:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

func normalizeDifficulty(raw string, testType TestType) Difficulty {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(raw)
	default:
		return defaultDifficulty(testType)
	}
}
