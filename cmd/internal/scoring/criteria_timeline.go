package scoring

import (
	"time"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// timelineCriteria — критерии оси "Сроки": определённость календаря работ
// и актуальность самой сметы.
func timelineCriteria() []Criterion {
	return []Criterion{
		{ID: "timeline_defined", Evaluate: evalTimelineDefined},
		{ID: "timeline_duration_plausible", Evaluate: evalTimelineDuration},
		{ID: "timeline_validity_window", Evaluate: evalValidityWindow},
	}
}

func evalTimelineDefined(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "timeline_defined"

	start, hasStart := parseQuoteDate(quote.StartDate)
	end, hasEnd := parseQuoteDate(quote.EndDate)

	switch {
	case hasStart && hasEnd && end.After(start):
		return result(id, 1.0, "указаны согласованные даты начала и окончания работ")
	case hasStart && hasEnd:
		return result(id, 0.2, "дата окончания работ раньше даты начала")
	case hasStart || hasEnd:
		return result(id, 0.6, "указана только одна из дат начала/окончания работ")
	default:
		return result(id, 0.3, "календарь работ в смете не определён")
	}
}

// evalTimelineDuration проверяет грубую правдоподобность длительности работ
// относительно масштаба сметы: недельный срок на крупный объект так же
// подозрителен, как годовой на мелкий ремонт.
func evalTimelineDuration(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	sctx *api_models.ScoringContext,
) CriterionResult {
	const id = "timeline_duration_plausible"

	start, hasStart := parseQuoteDate(quote.StartDate)
	end, hasEnd := parseQuoteDate(quote.EndDate)
	if !hasStart || !hasEnd || !end.After(start) {
		return neutralResult(id, "длительность работ не определена")
	}
	days := end.Sub(start).Hours() / 24

	// Грубые рамки по ценовой категории проекта.
	minDays, maxDays := 1.0, 365.0
	if sctx != nil {
		switch sctx.AmountBracket {
		case "small":
			minDays, maxDays = 1, 60
		case "medium":
			minDays, maxDays = 5, 180
		case "large":
			minDays, maxDays = 20, 540
		}
	}

	if days >= minDays && days <= maxDays {
		return result(id, 1.0, "длительность работ %.0f дней правдоподобна", days)
	}
	if days < minDays {
		return result(id, 0.4, "срок %.0f дней подозрительно короток для проекта такого масштаба", days)
	}
	return result(id, 0.4, "срок %.0f дней избыточен для проекта такого масштаба", days)
}

// evalValidityWindow оценивает актуальность сметы: давность выпуска
// и срок действия предложения.
func evalValidityWindow(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "timeline_validity_window"

	issue, hasIssue := parseQuoteDate(quote.IssueDate)
	valid, hasValid := parseQuoteDate(quote.ValidUntil)
	if !hasIssue && !hasValid {
		return neutralResult(id, "даты выпуска и срока действия не извлечены")
	}

	now := time.Now()
	score := 1.0
	note := "смета актуальна"

	if hasValid && valid.Before(now) {
		return result(id, 0.15, "срок действия сметы истёк %s", valid.Format("2006-01-02"))
	}
	if hasIssue {
		age := now.Sub(issue).Hours() / 24
		switch {
		case age > 180:
			score, note = 0.4, "смета выпущена более полугода назад"
		case age > 90:
			score, note = 0.7, "смета выпущена более трёх месяцев назад"
		}
	}
	return result(id, score, "%s", note)
}
