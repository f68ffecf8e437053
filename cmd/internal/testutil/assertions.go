package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEqual сравнивает два JSON объекта независимо от порядка полей
func AssertJSONEqual(t *testing.T, expected, actual string) {
	t.Helper()

	var expectedJSON, actualJSON interface{}

	err := json.Unmarshal([]byte(expected), &expectedJSON)
	require.NoError(t, err, "Invalid expected JSON")

	err = json.Unmarshal([]byte(actual), &actualJSON)
	require.NoError(t, err, "Invalid actual JSON")

	assert.Equal(t, expectedJSON, actualJSON)
}

// AssertErrorContains проверяет, что ошибка содержит определенную подстроку
func AssertErrorContains(t *testing.T, err error, substring string) {
	t.Helper()

	require.Error(t, err, "Expected an error but got nil")
	assert.Contains(t, err.Error(), substring)
}

// AssertScoreInRange проверяет, что балл лежит в границах шкалы рубрики
func AssertScoreInRange(t *testing.T, score int, maxPoints float64) {
	t.Helper()
	assert.GreaterOrEqual(t, score, 0, "score must not be negative")
	assert.LessOrEqual(t, float64(score), maxPoints, "score must not exceed rubric scale")
}

// AssertConfidenceInRange проверяет инвариант доверия 50..100
func AssertConfidenceInRange(t *testing.T, confidence int) {
	t.Helper()
	assert.GreaterOrEqual(t, confidence, 50)
	assert.LessOrEqual(t, confidence, 100)
}
