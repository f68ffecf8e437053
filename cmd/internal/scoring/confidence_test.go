package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func axes(percentages ...float64) []AxisScore {
	out := make([]AxisScore, 0, len(percentages))
	for _, p := range percentages {
		out = append(out, AxisScore{Percentage: p, MaxPoints: 100, Score: p})
	}
	return out
}

func TestConfidenceZeroDispersionKeepsBase(t *testing.T) {
	// Все оси согласны — базовое доверие не уменьшается.
	assert.Equal(t, 85, estimateConfidence(85, axes(70, 70, 70, 70)))
}

func TestConfidenceDropsWithDisagreement(t *testing.T) {
	// Отличная цена при провальном соответствии: балл может выглядеть
	// пристойно, но доверять единственной цифре не стоит.
	conflicting := estimateConfidence(85, axes(100, 100, 40, 40))
	agreeing := estimateConfidence(85, axes(70, 70, 70, 70))
	assert.Less(t, conflicting, agreeing)
}

func TestConfidenceClampedAtFifty(t *testing.T) {
	// MAD = 50 даёт штраф 75 — доверие упирается в нижнюю границу.
	assert.Equal(t, 50, estimateConfidence(85, axes(100, 100, 0, 0)))
}

func TestConfidenceNeverExceedsHundred(t *testing.T) {
	assert.Equal(t, 100, estimateConfidence(100, axes(80, 80, 80)))
}

func TestConfidenceEmptyBreakdown(t *testing.T) {
	assert.Equal(t, 50, estimateConfidence(85, nil))
}

func TestConfidencePenaltyProportionalToMAD(t *testing.T) {
	// Проценты 80,80,60,60: среднее 70, MAD 10, штраф 15.
	assert.Equal(t, 70, estimateConfidence(85, axes(80, 80, 60, 60)))
}
