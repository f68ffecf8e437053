package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovvlad/devis-go/cmd/internal/testutil"
)

/*
BEHAVIORAL SCENARIOS FOR SCORE ENGINE (Unit Tests)

What user problems does this protect us from?
================================================================================
1. Totality - every syntactically valid quote gets a result, even an empty one
2. Determinism - the same inputs always produce the same score and grade
3. Bounds - scores never escape the rubric scale, confidence stays in 50..100
4. Fail-open - missing enrichment lowers nothing by itself, only via alerts
5. Versioning - results are stamped with the rubric that produced them

GIVEN / WHEN / THEN Scenarios:
================================================================================

SCENARIO 1: Complete quote, full enrichment
- GIVEN a fully extracted quote with favorable enrichment
  WHEN the quote is scored under either rubric
  THEN score, axis scores and confidence respect their bounds

SCENARIO 2: Sparse quote, no enrichment
- GIVEN a quote with only a total and one line item
  WHEN the quote is scored
  THEN a result is still produced, with alerts instead of a refusal

SCENARIO 3: Known axis shares
- GIVEN a synthetic rubric where every axis yields a known share
  WHEN the quote is scored
  THEN the final score and confidence match hand-computed values
*/

func TestCalculateScoreFullQuoteBothRubrics(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-001")
	enrichment := testutil.CreateTestEnrichment()
	sctx := testutil.CreateTestContext()

	for _, rubric := range []*Rubric{NewLegacyRubric(), NewAdvancedRubric()} {
		engine, err := newTestEngine(rubric)
		require.NoError(t, err)

		result := engine.CalculateScore(&quote, enrichment, &sctx)
		require.NotNil(t, result)

		assert.Equal(t, "devis-001", result.QuoteID)
		assert.Equal(t, rubric.Version, result.RubricVersion)
		assert.NotEmpty(t, result.ID)
		assert.False(t, result.ComputedAt.IsZero())

		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, float64(result.Score), rubric.TotalPoints)
		assert.GreaterOrEqual(t, result.Confidence, 50)
		assert.LessOrEqual(t, result.Confidence, 100)

		require.Len(t, result.Breakdown, len(rubric.Axes))
		for _, axis := range result.Breakdown {
			assert.GreaterOrEqual(t, axis.Score, 0.0, "ось %s", axis.ID)
			assert.LessOrEqual(t, axis.Score, axis.MaxPoints, "ось %s", axis.ID)
			assert.NotEmpty(t, axis.Criteria, "ось %s", axis.ID)
		}

		// Бенчмарк был в обогащении — позиция должна быть посчитана.
		require.NotNil(t, result.Benchmark)
		require.NotNil(t, result.Benchmark.Percentile)
	}
}

// Одна и та же смета под двумя рубриками даёт два независимых результата
// с разными версиями и шкалами.
func TestSameQuoteUnderBothRubrics(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-002")
	enrichment := testutil.CreateTestEnrichment()
	sctx := testutil.CreateTestContext()

	legacyEngine, err := newTestEngine(NewLegacyRubric())
	require.NoError(t, err)
	advancedEngine, err := newTestEngine(NewAdvancedRubric())
	require.NoError(t, err)

	legacy := legacyEngine.CalculateScore(&quote, enrichment, &sctx)
	advanced := advancedEngine.CalculateScore(&quote, enrichment, &sctx)

	assert.Equal(t, RubricVersionLegacy, legacy.RubricVersion)
	assert.Equal(t, RubricVersionAdvanced, advanced.RubricVersion)
	assert.NotEqual(t, legacy.RubricVersion, advanced.RubricVersion)
	assert.LessOrEqual(t, float64(legacy.Score), 1000.0)
	assert.LessOrEqual(t, float64(advanced.Score), 1200.0)
}

// Идемпотентность: повторный вызов с теми же входами даёт идентичный
// результат (без учёта ID и временной метки).
func TestCalculateScoreIdempotent(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-003")
	enrichment := testutil.CreateTestEnrichment()
	sctx := testutil.CreateTestContext()

	engine, err := newTestEngine(NewAdvancedRubric())
	require.NoError(t, err)

	first := engine.CalculateScore(&quote, enrichment, &sctx)
	second := engine.CalculateScore(&quote, enrichment, &sctx)

	first.ID, second.ID = "", ""
	first.ComputedAt, second.ComputedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
}

func TestCalculateScoreSparseQuoteStillScores(t *testing.T) {
	quote := testutil.CreateSparseQuote("devis-004")

	engine, err := newTestEngine(NewAdvancedRubric())
	require.NoError(t, err)

	result := engine.CalculateScore(&quote, nil, nil)
	require.NotNil(t, result)

	assert.GreaterOrEqual(t, result.Score, 0)
	assert.GreaterOrEqual(t, result.Confidence, 50)
	assert.Nil(t, result.Benchmark, "без данных бенчмарка позиция не считается")

	types := alertTypes(result.Alerts)
	assert.Contains(t, types, AlertMissingLegalID)
	assert.Contains(t, types, AlertEnrichmentUnavailable)
}

// Отсутствие регистрационного номера — всегда критическое предупреждение,
// независимо от того, как смета набрала по осям.
func TestMissingLegalIDAlwaysCritical(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-005")
	quote.CompanyLegalID = ""

	engine, err := newTestEngine(NewLegacyRubric())
	require.NoError(t, err)

	result := engine.CalculateScore(&quote, testutil.CreateTestEnrichment(), nil)

	var found *Alert
	for i := range result.Alerts {
		if result.Alerts[i].Type == AlertMissingLegalID {
			found = &result.Alerts[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, SeverityCritical, found.Severity)
}

// Сценарий из постановки: все четыре оси легаси-рубрики ровно на 70%
// дают итог 700 при нулевом разбросе — доверие равно базовым 85.
func TestAllAxesAtSeventyPercent(t *testing.T) {
	engine, err := newTestEngine(syntheticRubric(0.7, 0.7, 0.7, 0.7))
	require.NoError(t, err)

	quote := testutil.CreateTestQuote("devis-006")
	result := engine.CalculateScore(&quote, nil, nil)

	assert.Equal(t, 700, result.Score)
	assert.Equal(t, "B", result.Grade)
	assert.Equal(t, 85, result.Confidence)
}

// Сценарий из постановки: ось соответствия на 35% от максимума
// обязана дать критическое предупреждение CONFORMITY_CRITICAL.
func TestComplianceBelowThresholdEmitsCriticalAlert(t *testing.T) {
	engine, err := newTestEngine(syntheticRubric(0.7, 0.7, 0.7, 0.35))
	require.NoError(t, err)

	quote := testutil.CreateTestQuote("devis-007")
	result := engine.CalculateScore(&quote, testutil.CreateTestEnrichment(), nil)

	var found *Alert
	for i := range result.Alerts {
		if result.Alerts[i].Type == AlertConformityCritical {
			found = &result.Alerts[i]
		}
	}
	require.NotNil(t, found, "ожидалось предупреждение CONFORMITY_CRITICAL")
	assert.Equal(t, SeverityCritical, found.Severity)
}

// Рекомендации срабатывают раньше предупреждений: ось на 50% уже
// получает совет, хотя предупреждения по оси ещё нет.
func TestRecommendationsTriggerEarlierThanAlerts(t *testing.T) {
	engine, err := newTestEngine(syntheticRubric(0.5, 0.8, 0.8, 0.8))
	require.NoError(t, err)

	quote := testutil.CreateTestQuote("devis-008")
	result := engine.CalculateScore(&quote, testutil.CreateTestEnrichment(), nil)

	var rec *Recommendation
	for i := range result.Recommendations {
		if result.Recommendations[i].Category == string(AxisPrice) {
			rec = &result.Recommendations[i]
		}
	}
	require.NotNil(t, rec, "ожидалась рекомендация по ценовой оси")
	assert.Equal(t, PriorityMedium, rec.Priority)
	assert.NotEmpty(t, rec.Impact)

	assert.NotContains(t, alertTypes(result.Alerts), AlertPriceSuspicious,
		"при 50 процентах предупреждение по цене ещё не должно срабатывать")
}

func TestNewEngineRejectsBrokenRubric(t *testing.T) {
	rubric := NewLegacyRubric()
	rubric.Axes[0].Weight = 0.9 // ломаем сумму весов

	_, err := newTestEngine(rubric)
	require.Error(t, err)
}

func alertTypes(alerts []Alert) []string {
	types := make([]string, 0, len(alerts))
	for _, a := range alerts {
		types = append(types, a.Type)
	}
	return types
}
