package scoring

import (
	"strings"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// Критерии четырёх дополнительных осей расширенной рубрики.
//
// Часть правил здесь намеренно возвращает нейтральное значение:
// контракт (quote, context) -> [0,1] зафиксирован, а конкретные пороги
// требуют экспертизы предметной области. Агрегация и взвешивание
// от этого не зависят.

func feasibilityCriteria() []Criterion {
	return []Criterion{
		{ID: "feasibility_quantities", Evaluate: evalQuantitiesPlausible},
		{ID: "feasibility_scope_match", Evaluate: evalScopeMatch},
		{ID: "feasibility_resource_plan", Evaluate: evalResourcePlan},
	}
}

func transparencyCriteria() []Criterion {
	return []Criterion{
		{ID: "transparency_line_granularity", Evaluate: evalLineGranularity},
		{ID: "transparency_units_present", Evaluate: evalUnitsPresent},
		{ID: "transparency_tax_details", Evaluate: evalTaxDetails},
	}
}

func guaranteesCriteria() []Criterion {
	return []Criterion{
		{ID: "guarantees_mentions", Evaluate: evalGuaranteeMentions},
		{ID: "guarantees_insurance_validity", Evaluate: evalInsuranceValidity},
		{ID: "guarantees_certification_backing", Evaluate: evalCertificationBacking},
	}
}

func innovationCriteria() []Criterion {
	return []Criterion{
		{ID: "innovation_materials", Evaluate: evalInnovationMaterials},
		{ID: "innovation_methods", Evaluate: evalInnovationMethods},
	}
}

// evalQuantitiesPlausible: позиции с нулевыми или отсутствующими
// количествами делают смету непроверяемой.
func evalQuantitiesPlausible(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "feasibility_quantities"

	if len(quote.LineItems) == 0 {
		return neutralResult(id, "позиции сметы не извлечены")
	}
	var withQty int
	for _, item := range quote.LineItems {
		if item.Quantity > 0 {
			withQty++
		}
	}
	share := float64(withQty) / float64(len(quote.LineItems))
	return result(id, share, "%d из %d позиций имеют количественную оценку", withQty, len(quote.LineItems))
}

// evalScopeMatch: соответствие состава работ заявленному виду работ (trade).
// Правило сопоставления номенклатуры работ с trade требует экспертного
// словаря; пока критерий нейтрален.
func evalScopeMatch(
	_ *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	return neutralResult("feasibility_scope_match", "сопоставление состава работ с видом работ требует экспертного словаря")
}

// evalResourcePlan: реалистичность ресурсного плана. Требует нормативов
// трудозатрат; пока критерий нейтрален.
func evalResourcePlan(
	_ *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	return neutralResult("feasibility_resource_plan", "оценка ресурсного плана требует нормативов трудозатрат")
}

// evalLineGranularity: детализация сметы. Одна строка "работы под ключ"
// на всю сумму — худший случай прозрачности.
func evalLineGranularity(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "transparency_line_granularity"

	n := len(quote.LineItems)
	switch {
	case n == 0:
		return result(id, 0.1, "в смете нет ни одной позиции")
	case n == 1:
		return result(id, 0.3, "вся смета сведена в одну позицию")
	case n < 5:
		return result(id, 0.6, "смета детализирована слабо (%d позиции)", n)
	default:
		return result(id, 1.0, "смета детализирована (%d позиций)", n)
	}
}

func evalUnitsPresent(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "transparency_units_present"

	if len(quote.LineItems) == 0 {
		return neutralResult(id, "позиции сметы не извлечены")
	}
	var withUnit int
	for _, item := range quote.LineItems {
		if strings.TrimSpace(item.Unit) != "" {
			withUnit++
		}
	}
	share := float64(withUnit) / float64(len(quote.LineItems))
	return result(id, share, "единицы измерения указаны у %d из %d позиций", withUnit, len(quote.LineItems))
}

func evalTaxDetails(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "transparency_tax_details"

	switch {
	case quote.TaxRate > 0 && quote.TaxAmount > 0:
		return result(id, 1.0, "ставка и сумма налога указаны раздельно")
	case quote.TaxRate > 0 || quote.TaxAmount > 0:
		return result(id, 0.6, "налог раскрыт частично")
	default:
		return result(id, 0.3, "налоговая детализация отсутствует")
	}
}

// evalGuaranteeMentions агрегирует юридические упоминания гарантий
// в самом документе.
func evalGuaranteeMentions(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "guarantees_mentions"

	mentions := 0
	if quote.HasWarrantyMention {
		mentions++
	}
	if quote.HasInsuranceMention {
		mentions++
	}
	switch mentions {
	case 2:
		return result(id, 1.0, "гарантия и страхование упомянуты в документе")
	case 1:
		return result(id, 0.5, "упомянута только часть обязательных гарантий")
	default:
		return result(id, 0.15, "гарантийные упоминания в документе отсутствуют")
	}
}

// evalInsuranceValidity сверяет страховку с реестром: упоминание в смете
// стоит мало, если полис не действует.
func evalInsuranceValidity(
	_ *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "guarantees_insurance_validity"

	if enrichment == nil || enrichment.Company == nil {
		return neutralResult(id, "статус страхования в реестре недоступен")
	}
	if enrichment.Company.InsuranceValid {
		return result(id, 1.0, "действующий страховой полис подтверждён реестром")
	}
	return result(id, 0.1, "реестр не подтверждает действующий страховой полис")
}

func evalCertificationBacking(
	_ *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "guarantees_certification_backing"

	if enrichment == nil || enrichment.Company == nil {
		return neutralResult(id, "данные о сертификациях недоступны")
	}
	if len(enrichment.Company.Certifications) > 0 {
		return result(id, 0.9, "гарантии подкреплены сертификациями компании")
	}
	return result(id, 0.5, "гарантии не подкреплены сертификациями")
}

// evalInnovationMaterials / evalInnovationMethods: признаки инновационных
// материалов и методов в описаниях работ. Номенклатура "инновационности"
// не формализована — критерии нейтральны до экспертной настройки.
func evalInnovationMaterials(
	_ *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	return neutralResult("innovation_materials", "номенклатура инновационных материалов требует экспертной настройки")
}

func evalInnovationMethods(
	_ *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	return neutralResult("innovation_methods", "номенклатура инновационных методов требует экспертной настройки")
}
