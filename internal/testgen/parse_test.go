package testgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const caseArray = `[
	{"arguments": {"query": "golang"}, "description": "simple search", "expected_behavior": "returns results", "difficulty": "easy"},
	{"arguments": {"query": ""}, "description": "empty query", "expected_behavior": "handles gracefully", "difficulty": "medium"}
]`

func TestParseCaseListBareArray(t *testing.T) {
	cases, err := parseCaseList(caseArray)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.Equal(t, "simple search", cases[0].Description)
	require.Equal(t, map[string]any{"query": "golang"}, cases[0].Arguments)
	require.Equal(t, "medium", cases[1].Difficulty)
}

func TestParseCaseListMarkdownFences(t *testing.T) {
	cases, err := parseCaseList("```json\n" + caseArray + "\n```")
	require.NoError(t, err)
	require.Len(t, cases, 2)

	cases, err = parseCaseList("```\n" + caseArray + "\n```")
	require.NoError(t, err)
	require.Len(t, cases, 2)
}

func TestParseCaseListWrapperObject(t *testing.T) {
	cases, err := parseCaseList(`{"test_cases": ` + caseArray + `}`)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	// A single-key wrapper under any name is tolerated too.
	cases, err = parseCaseList(`{"cases": ` + caseArray + `}`)
	require.NoError(t, err)
	require.Len(t, cases, 2)
}

func TestParseCaseListRepairsBrokenJSON(t *testing.T) {
	// Trailing comma: structurally broken, recoverable.
	broken := `[{"arguments": {"query": "x"}, "description": "d", "expected_behavior": "b", "difficulty": "easy"},]`
	cases, err := parseCaseList(broken)
	require.NoError(t, err)
	require.Len(t, cases, 1)
}

func TestParseCaseListRejectsGarbage(t *testing.T) {
	_, err := parseCaseList("")
	require.Error(t, err)

	_, err = parseCaseList("I could not generate test cases for this tool.")
	require.Error(t, err)

	_, err = parseCaseList(`{"a": 1, "b": 2}`)
	require.Error(t, err)
}

func TestNormalizeDifficulty(t *testing.T) {
	require.Equal(t, DifficultyHard, normalizeDifficulty("hard", TestTypeRealistic))
	require.Equal(t, DifficultyEasy, normalizeDifficulty("", TestTypeRealistic))
	require.Equal(t, DifficultyMedium, normalizeDifficulty("extreme", TestTypeInvalid))
	require.Equal(t, DifficultyHard, normalizeDifficulty("", TestTypeStressTest))
	require.Equal(t, DifficultyMedium, normalizeDifficulty("", TestTypeEdgeCase))
}
