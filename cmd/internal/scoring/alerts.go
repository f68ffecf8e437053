package scoring

import (
	"fmt"
	"time"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// Пороговые доли от максимума оси.
const (
	alertAxisThreshold          = 0.40 // ниже — предупреждение по оси
	recommendationAxisThreshold = 0.65 // ниже — рекомендация (срабатывает раньше предупреждений)
	recommendationHighThreshold = 0.40
	recommendationMedThreshold  = 0.55
)

// generateAlerts прогоняет детерминированный список правил по смете
// и разбивке по осям. Правила аддитивны; предупреждения одного типа
// схлопываются до одного на вызов.
func generateAlerts(
	quote *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	breakdown []AxisScore,
) []Alert {
	var alerts []Alert
	seen := make(map[string]bool)

	add := func(a Alert) {
		if seen[a.Type] {
			return
		}
		seen[a.Type] = true
		alerts = append(alerts, a)
	}

	// Безусловные критические проверки — не зависят от баллов осей.
	if quote.CompanyLegalID == "" {
		add(Alert{
			Type:     AlertMissingLegalID,
			Severity: SeverityCritical,
			Message:  "В смете отсутствует регистрационный номер компании",
		})
	}

	if ok, diff := totalsReconciled(quote); !ok {
		add(Alert{
			Type:     AlertInconsistentTotals,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("Сумма позиций расходится с заявленным итогом на %.1f%%", diff*100),
		})
	}

	if enrichment == nil || enrichment.Company == nil {
		add(Alert{
			Type:     AlertEnrichmentUnavailable,
			Severity: SeverityLow,
			Message:  "Данные реестра о компании недоступны: часть критериев оценена нейтрально",
		})
	}

	if valid, ok := parseQuoteDate(quote.ValidUntil); ok && valid.Before(time.Now()) {
		add(Alert{
			Type:     AlertQuoteExpired,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("Срок действия сметы истёк %s", valid.Format("2006-01-02")),
		})
	}

	// Пороговые проверки по осям: серьёзность зависит от того,
	// какая ось просела.
	for _, axis := range breakdown {
		if axis.MaxPoints <= 0 || axis.Score/axis.MaxPoints >= alertAxisThreshold {
			continue
		}
		pct := axis.Score / axis.MaxPoints * 100
		switch axis.ID {
		case AxisCompliance:
			add(Alert{
				Type:     AlertConformityCritical,
				Severity: SeverityCritical,
				Message:  fmt.Sprintf("Ось соответствия набрала лишь %.0f%% от максимума", pct),
			})
		case AxisQuality:
			add(Alert{
				Type:     AlertQualityCritical,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("Ось качества набрала лишь %.0f%% от максимума", pct),
			})
		case AxisPrice:
			add(Alert{
				Type:     AlertPriceSuspicious,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("Ценовая ось набрала лишь %.0f%% от максимума", pct),
			})
		default:
			add(Alert{
				Type:     fmt.Sprintf("%s_%s", AlertAxisLow, axis.ID),
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("Ось %q набрала лишь %.0f%% от максимума", axis.Label, pct),
			})
		}
	}

	if alerts == nil {
		alerts = []Alert{}
	}
	return alerts
}
