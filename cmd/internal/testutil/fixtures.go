package testutil

import (
	"time"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// ValidLegalID — регистрационный номер, проходящий проверку контрольной
// суммы. Используется в фикстурах для предсказуемых проверок соответствия.
const ValidLegalID = "73282932000074"

// CreateTestQuote создает полностью заполненную тестовую смету
// с арифметически согласованными итогами.
func CreateTestQuote(quoteID string) api_models.ExtractedQuoteData {
	now := time.Now()
	return api_models.ExtractedQuoteData{
		QuoteID:        quoteID,
		CompanyName:    "Batiment Plus SARL",
		CompanyLegalID: ValidLegalID,
		CompanyAddress: "12 rue des Artisans, Lyon",
		ClientName:     "M. Dupont",
		ClientAddress:  "3 avenue de la Gare, Lyon",
		ProjectDescription: "Полная реновация ванной комнаты: демонтаж старой сантехники, " +
			"укладка плитки, монтаж душевой кабины, замена электропроводки во влажной зоне, " +
			"установка полотенцесушителя и финишная отделка потолка",
		LineItems: []api_models.LineItem{
			{Description: "Демонтаж сантехники", Quantity: 1, Unit: "forfait", UnitPrice: 800, LineTotal: 800},
			{Description: "Укладка плитки", Quantity: 25, Unit: "m2", UnitPrice: 120, LineTotal: 3000},
			{Description: "Монтаж душевой кабины", Quantity: 1, Unit: "u", UnitPrice: 1500, LineTotal: 1500},
			{Description: "Электромонтаж влажной зоны", Quantity: 12, Unit: "h", UnitPrice: 60, LineTotal: 720},
			{Description: "Финишная отделка потолка", Quantity: 8, Unit: "m2", UnitPrice: 60, LineTotal: 480},
		},
		Subtotal:  6500,
		TaxRate:   10,
		TaxAmount: 650,
		Total:     7150,

		IssueDate:  now.AddDate(0, 0, -10).Format(time.RFC3339),
		ValidUntil: now.AddDate(0, 2, 0).Format(time.RFC3339),
		StartDate:  now.AddDate(0, 1, 0).Format(time.RFC3339),
		EndDate:    now.AddDate(0, 1, 20).Format(time.RFC3339),

		HasInsuranceMention: true,
		HasWarrantyMention:  true,
		HasPaymentTerms:     true,
	}
}

// CreateSparseQuote создает минимальную смету: только итог и одна позиция,
// без дат, юридических упоминаний и регистрационного номера.
func CreateSparseQuote(quoteID string) api_models.ExtractedQuoteData {
	return api_models.ExtractedQuoteData{
		QuoteID: quoteID,
		LineItems: []api_models.LineItem{
			{Description: "Работы под ключ", LineTotal: 15000},
		},
		Total: 15000,
	}
}

// CreateTestEnrichment создает благоприятный контекст обогащения:
// зрелая компания с сертификациями и действующей страховкой.
func CreateTestEnrichment() *api_models.EnrichmentContext {
	return &api_models.EnrichmentContext{
		Company: &api_models.CompanyRecord{
			YearsActive:    12,
			LegalStatusOK:  true,
			Certifications: []string{"RGE", "Qualibat", "QualiPAC"},
			InsuranceValid: true,
			FinancialScore: 0.85,
		},
		Prices: &api_models.PriceReference{
			Trade: "renovation",
			UnitPrices: map[string]float64{
				"плитки": 115,
			},
		},
		Benchmark: &api_models.RegionalBenchmarkData{
			Region:             "Auvergne-Rhone-Alpes",
			AveragePrice:       7000,
			MinPrice:           5000,
			MaxPrice:           10000,
			AveragePricePerSqm: 950,
		},
		Compliance: &api_models.ComplianceReference{
			ApplicableDTU: []string{"DTU 52.2", "DTU 60.1"},
		},
	}
}

// CreateTestContext создает типовой контекст оценки.
func CreateTestContext() api_models.ScoringContext {
	return api_models.ScoringContext{
		Profile:       "individual",
		ProjectType:   "renovation",
		Trade:         "renovation",
		Region:        "Auvergne-Rhone-Alpes",
		AmountBracket: "medium",
	}
}
