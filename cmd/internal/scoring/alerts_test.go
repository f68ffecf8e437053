package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
	"github.com/zhukovvlad/devis-go/cmd/internal/testutil"
)

func TestGenerateAlertsInconsistentTotals(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-a1")
	// Ломаем сверку: заявленный промежуточный итог на 20% выше суммы позиций.
	quote.Subtotal = 7800

	alerts := generateAlerts(&quote, testutil.CreateTestEnrichment(), nil)

	var found *Alert
	for i := range alerts {
		if alerts[i].Type == AlertInconsistentTotals {
			found = &alerts[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, SeverityHigh, found.Severity)
}

func TestGenerateAlertsExpiredQuote(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-a2")
	quote.ValidUntil = time.Now().AddDate(0, 0, -5).Format(time.RFC3339)

	alerts := generateAlerts(&quote, testutil.CreateTestEnrichment(), nil)

	types := make([]string, 0, len(alerts))
	for _, a := range alerts {
		types = append(types, a.Type)
	}
	assert.Contains(t, types, AlertQuoteExpired)
}

func TestGenerateAlertsCleanQuoteIsQuiet(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-a3")

	alerts := generateAlerts(&quote, testutil.CreateTestEnrichment(), nil)
	assert.Empty(t, alerts, "полная согласованная смета не должна давать предупреждений")
}

// Предупреждения одного типа схлопываются до одного на вызов: две
// просевшие оси по умолчанию дают два разных типа AXIS_LOW_*, но одна
// и та же ось не дублируется.
func TestGenerateAlertsDeduplicatesByType(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-a4")
	quote.CompanyLegalID = ""

	// Искусственная разбивка: одна и та же просевшая ось дважды.
	breakdown := []AxisScore{
		{ID: AxisCompliance, Label: "Соответствие", Score: 50, MaxPoints: 250},
		{ID: AxisCompliance, Label: "Соответствие", Score: 60, MaxPoints: 250},
	}

	alerts := generateAlerts(&quote, testutil.CreateTestEnrichment(), breakdown)

	count := map[string]int{}
	for _, a := range alerts {
		count[a.Type]++
	}
	for alertType, n := range count {
		assert.Equal(t, 1, n, "тип %s должен встречаться один раз", alertType)
	}
	assert.Equal(t, 1, count[AlertConformityCritical])
	assert.Equal(t, 1, count[AlertMissingLegalID])
}

// Правила по осям различают, какая именно ось просела.
func TestGenerateAlertsAxisSeverities(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-a5")
	breakdown := []AxisScore{
		{ID: AxisCompliance, Label: "Соответствие", Score: 80, MaxPoints: 240},
		{ID: AxisQuality, Label: "Качество", Score: 60, MaxPoints: 180},
		{ID: AxisPrice, Label: "Цена", Score: 80, MaxPoints: 240},
		{ID: AxisInnovation, Label: "Инновации", Score: 20, MaxPoints: 60},
	}

	alerts := generateAlerts(&quote, testutil.CreateTestEnrichment(), breakdown)

	severityByType := map[string]Severity{}
	for _, a := range alerts {
		severityByType[a.Type] = a.Severity
	}

	assert.Equal(t, SeverityCritical, severityByType[AlertConformityCritical])
	assert.Equal(t, SeverityHigh, severityByType[AlertQualityCritical])
	assert.Equal(t, SeverityMedium, severityByType[AlertPriceSuspicious])
	assert.Equal(t, SeverityMedium, severityByType[AlertAxisLow+"_innovation"])
}

func TestGenerateAlertsMissingEnrichmentIsLowSeverity(t *testing.T) {
	quote := testutil.CreateTestQuote("devis-a6")

	alerts := generateAlerts(&quote, &api_models.EnrichmentContext{}, nil)

	var found *Alert
	for i := range alerts {
		if alerts[i].Type == AlertEnrichmentUnavailable {
			found = &alerts[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, SeverityLow, found.Severity)
}
