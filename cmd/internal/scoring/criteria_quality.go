package scoring

import (
	"strings"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// qualityCriteria — критерии оси "Качество": репутация и здоровье компании
// по данным обогащения плюс содержательность самой сметы.
func qualityCriteria() []Criterion {
	return []Criterion{
		{ID: "quality_certifications", Evaluate: evalCompanyCertifications},
		{ID: "quality_track_record", Evaluate: evalCompanyTrackRecord},
		{ID: "quality_financial_health", Evaluate: evalCompanyFinancialHealth},
		{ID: "quality_project_description", Evaluate: evalProjectDescription},
	}
}

func evalCompanyCertifications(
	_ *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "quality_certifications"

	if enrichment == nil || enrichment.Company == nil {
		return neutralResult(id, "данные о компании недоступны")
	}
	n := len(enrichment.Company.Certifications)
	switch {
	case n >= 3:
		return result(id, 1.0, "у компании %d профессиональных сертификаций", n)
	case n == 2:
		return result(id, 0.85, "у компании 2 профессиональные сертификации")
	case n == 1:
		return result(id, 0.7, "у компании 1 профессиональная сертификация")
	default:
		return result(id, 0.4, "у компании нет подтверждённых сертификаций")
	}
}

func evalCompanyTrackRecord(
	_ *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "quality_track_record"

	if enrichment == nil || enrichment.Company == nil {
		return neutralResult(id, "данные о компании недоступны")
	}
	years := enrichment.Company.YearsActive
	switch {
	case years >= 10:
		return result(id, 1.0, "компания работает %d лет", years)
	case years >= 5:
		return result(id, 0.8, "компания работает %d лет", years)
	case years >= 2:
		return result(id, 0.6, "компания работает %d года", years)
	default:
		return result(id, 0.35, "компания моложе двух лет")
	}
}

func evalCompanyFinancialHealth(
	_ *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "quality_financial_health"

	if enrichment == nil || enrichment.Company == nil || enrichment.Company.FinancialScore <= 0 {
		return neutralResult(id, "финансовая история компании недоступна")
	}
	score := clamp01(enrichment.Company.FinancialScore)
	if !enrichment.Company.LegalStatusOK {
		// Открытая процедура банкротства/ликвидации перечёркивает
		// любые финансовые показатели.
		return result(id, score*0.3, "у компании проблемный юридический статус")
	}
	return result(id, score, "финансовый агрегат компании %.2f", score)
}

// evalProjectDescription оценивает содержательность описания работ
// в самой смете: пустые и односложные описания — признак небрежной сметы.
func evalProjectDescription(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "quality_project_description"

	desc := strings.TrimSpace(quote.ProjectDescription)
	words := 0
	if desc != "" {
		words = len(strings.Fields(desc))
	}
	switch {
	case words >= 30:
		return result(id, 1.0, "подробное описание проекта (%d слов)", words)
	case words >= 10:
		return result(id, 0.75, "краткое описание проекта (%d слов)", words)
	case words >= 1:
		return result(id, 0.45, "описание проекта односложное")
	default:
		return result(id, 0.2, "описание проекта отсутствует")
	}
}
