package scoring

import (
	"math"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// complianceCriteria — критерии оси "Соответствие": юридическая корректность
// сметы как документа (регистрационный номер, обязательные упоминания,
// налоговая ставка, нормативные ссылки).
func complianceCriteria() []Criterion {
	return []Criterion{
		{ID: "compliance_legal_id", Evaluate: evalLegalID},
		{ID: "compliance_insurance_mention", Evaluate: evalInsuranceMention},
		{ID: "compliance_warranty_mention", Evaluate: evalWarrantyMention},
		{ID: "compliance_payment_terms", Evaluate: evalPaymentTerms},
		{ID: "compliance_tax_rate", Evaluate: evalTaxRate},
		{ID: "compliance_dtu_references", Evaluate: evalDTUReferences},
	}
}

// ValidLegalID проверяет регистрационный номер компании: SIRET —
// 14 цифр с контрольной суммой по алгоритму Луна.
func ValidLegalID(legalID string) bool {
	if len(legalID) != 14 {
		return false
	}
	sum := 0
	for i, r := range legalID {
		if r < '0' || r > '9' {
			return false
		}
		d := int(r - '0')
		// Удваиваются цифры на чётных позициях (0-индексация слева).
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

func evalLegalID(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "compliance_legal_id"

	switch {
	case quote.CompanyLegalID == "":
		return result(id, 0.0, "регистрационный номер компании отсутствует")
	case !ValidLegalID(quote.CompanyLegalID):
		return result(id, 0.3, "регистрационный номер не проходит проверку формата")
	default:
		return result(id, 1.0, "регистрационный номер корректен")
	}
}

func evalInsuranceMention(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "compliance_insurance_mention"
	if quote.HasInsuranceMention {
		return result(id, 1.0, "страхование упомянуто в смете")
	}
	return result(id, 0.2, "обязательное упоминание страхования отсутствует")
}

func evalWarrantyMention(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "compliance_warranty_mention"
	if quote.HasWarrantyMention {
		return result(id, 1.0, "гарантийные обязательства упомянуты")
	}
	return result(id, 0.25, "гарантийные обязательства не упомянуты")
}

func evalPaymentTerms(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "compliance_payment_terms"
	if quote.HasPaymentTerms {
		return result(id, 1.0, "условия оплаты указаны")
	}
	return result(id, 0.3, "условия оплаты не указаны")
}

// evalTaxRate проверяет, что заявленная ставка налога — одна из легальных
// ставок TVA для строительных работ.
func evalTaxRate(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "compliance_tax_rate"

	if quote.TaxRate == 0 && quote.TaxAmount == 0 {
		return neutralResult(id, "налоговые данные не извлечены")
	}
	for _, rate := range []float64{20, 10, 5.5, 2.1, 0} {
		if math.Abs(quote.TaxRate-rate) < 0.01 {
			return result(id, 1.0, "ставка налога %.1f%% допустима", quote.TaxRate)
		}
	}
	return result(id, 0.2, "ставка налога %.1f%% не соответствует ни одной из легальных", quote.TaxRate)
}

// evalDTUReferences сверяет смету с применимыми нормативами DTU.
// Конкретное правило сопоставления позиций с нормативами требует
// экспертизы предметной области; пока критерий лишь фиксирует,
// известны ли применимые нормативы вообще.
func evalDTUReferences(
	_ *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "compliance_dtu_references"

	if enrichment == nil || enrichment.Compliance == nil || len(enrichment.Compliance.ApplicableDTU) == 0 {
		return neutralResult(id, "справочник применимых DTU недоступен")
	}
	return neutralResult(id, "сопоставление позиций с DTU требует экспертной настройки правила")
}
