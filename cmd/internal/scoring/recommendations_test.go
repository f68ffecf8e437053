package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecommendationsPriorityTiers(t *testing.T) {
	breakdown := []AxisScore{
		{ID: AxisPrice, Label: "Цена", Score: 90, MaxPoints: 250},        // 36% -> high
		{ID: AxisQuality, Label: "Качество", Score: 150, MaxPoints: 300}, // 50% -> medium
		{ID: AxisTimeline, Label: "Сроки", Score: 120, MaxPoints: 200},   // 60% -> low
	}

	recs := generateRecommendations(breakdown)
	require.Len(t, recs, 3)

	byCategory := map[string]Recommendation{}
	for _, r := range recs {
		byCategory[r.Category] = r
	}

	assert.Equal(t, PriorityHigh, byCategory["price"].Priority)
	assert.Equal(t, PriorityMedium, byCategory["quality"].Priority)
	assert.Equal(t, PriorityLow, byCategory["timeline"].Priority)
}

func TestGenerateRecommendationsAboveThresholdIsSilent(t *testing.T) {
	breakdown := []AxisScore{
		{ID: AxisPrice, Label: "Цена", Score: 200, MaxPoints: 250},      // 80%
		{ID: AxisCompliance, Label: "Соответствие", Score: 163, MaxPoints: 250}, // 65.2%
	}

	recs := generateRecommendations(breakdown)
	assert.Empty(t, recs)
	assert.NotNil(t, recs, "пустой список сериализуется как [], а не null")
}

func TestGenerateRecommendationsImpactNamesPointGap(t *testing.T) {
	breakdown := []AxisScore{
		{ID: AxisGuarantees, Label: "Гарантии", Score: 40, MaxPoints: 120},
	}

	recs := generateRecommendations(breakdown)
	require.Len(t, recs, 1)

	assert.Equal(t, "guarantees", recs[0].Category)
	assert.Contains(t, recs[0].Impact, "+80")
	assert.NotEmpty(t, recs[0].Suggestion)
}
