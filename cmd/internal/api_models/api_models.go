package api_models

// ExtractedQuoteData — структурированное представление строительной сметы (devis),
// которое присылает внешний сервис анализа документов. Извлечение полей из
// исходного PDF/скана — не наша зона ответственности: сюда данные приходят
// уже разобранными, возможно частично.
type ExtractedQuoteData struct {
	QuoteID string `json:"quote_id"`

	CompanyName    string `json:"company_name"`
	CompanyLegalID string `json:"company_legal_id"` // SIRET или аналогичный регистрационный номер
	CompanyAddress string `json:"company_address"`

	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`

	ProjectDescription string `json:"project_description"`

	LineItems []LineItem `json:"line_items"`

	Subtotal  float64 `json:"subtotal"`   // сумма без налога
	TaxRate   float64 `json:"tax_rate"`   // ставка НДС/TVA в процентах
	TaxAmount float64 `json:"tax_amount"` // сумма налога
	Total     float64 `json:"total"`      // итог с налогом

	// Даты в формате RFC3339. Пустая строка означает, что анализатор
	// не смог извлечь дату.
	IssueDate  string `json:"issue_date,omitempty"`
	ValidUntil string `json:"valid_until,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`

	// Флаги наличия обязательных юридических упоминаний в тексте сметы.
	HasInsuranceMention bool `json:"has_insurance_mention"`
	HasWarrantyMention  bool `json:"has_warranty_mention"`
	HasPaymentTerms     bool `json:"has_payment_terms"`
}

// LineItem — одна позиция сметы.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"` // м², шт, час и т.д.
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// ScoringContext — неизменяемый контекст одного вызова оценки:
// какой профиль рубрики выбран и что мы знаем о проекте.
type ScoringContext struct {
	Profile       string `json:"profile"` // individual | business
	ProjectType   string `json:"project_type,omitempty"`
	Trade         string `json:"trade,omitempty"` // вид работ: plomberie, electricite, maconnerie...
	Region        string `json:"region,omitempty"`
	AmountBracket string `json:"amount_bracket,omitempty"` // диапазон суммы: small | medium | large
}

// EnrichmentContext — опциональные данные обогащения, заранее полученные
// внешними коллабораторами (реестр компаний, ценовые индексы, региональная
// статистика, справочники DTU). Любое поле может быть nil: движок обязан
// корректно оценивать смету и при полном отсутствии обогащения.
type EnrichmentContext struct {
	Company    *CompanyRecord         `json:"company,omitempty"`
	Prices     *PriceReference        `json:"prices,omitempty"`
	Benchmark  *RegionalBenchmarkData `json:"benchmark,omitempty"`
	Compliance *ComplianceReference   `json:"compliance,omitempty"`
}

// CompanyRecord — выписка о компании из реестра + финансовая история.
type CompanyRecord struct {
	YearsActive    int      `json:"years_active"`
	LegalStatusOK  bool     `json:"legal_status_ok"` // нет процедур банкротства/ликвидации
	Certifications []string `json:"certifications"`  // RGE, Qualibat и т.п.
	InsuranceValid bool     `json:"insurance_valid"` // действующая decennale
	FinancialScore float64  `json:"financial_score"` // 0..1, агрегат финансового здоровья
}

// PriceReference — справочник эталонных цен за единицу по виду работ.
type PriceReference struct {
	Trade         string             `json:"trade"`
	UnitPrices    map[string]float64 `json:"unit_prices"` // описание работы -> эталонная цена за единицу
	AverageMargin float64            `json:"average_margin,omitempty"`
}

// RegionalBenchmarkData — региональное распределение цен для позиционирования
// итоговой суммы сметы.
type RegionalBenchmarkData struct {
	Region             string  `json:"region"`
	AveragePrice       float64 `json:"average_price"`
	MinPrice           float64 `json:"min_price"`
	MaxPrice           float64 `json:"max_price"`
	AveragePricePerSqm float64 `json:"average_price_per_sqm,omitempty"`
}

// ComplianceReference — применимые нормативные ссылки (DTU) для вида работ.
type ComplianceReference struct {
	ApplicableDTU []string `json:"applicable_dtu"`
	MandatoryDocs []string `json:"mandatory_docs,omitempty"`
}

// ScoreQuoteRequest — полезная нагрузка запроса на оценку: смета + контекст +
// опциональное обогащение. Поле RubricVersion пустое — используется версия
// по умолчанию из конфигурации.
type ScoreQuoteRequest struct {
	Quote         ExtractedQuoteData `json:"quote"`
	Context       ScoringContext     `json:"context"`
	Enrichment    *EnrichmentContext `json:"enrichment,omitempty"`
	RubricVersion string             `json:"rubric_version,omitempty"`
}

// QualityRunRequest — запрос на пакетный прогон качества рубрики
// по историческим сметам.
type QualityRunRequest struct {
	RubricVersion string          `json:"rubric_version,omitempty"`
	Samples       []QualitySample `json:"samples"`
}

// QualitySample — один исторический пример: смета, её контекст и
// опциональная разметка ожиданий (эталонная оценка эксперта).
type QualitySample struct {
	QuoteID            string             `json:"quote_id"`
	Quote              ExtractedQuoteData `json:"quote"`
	Context            ScoringContext     `json:"context"`
	Enrichment         *EnrichmentContext `json:"enrichment,omitempty"`
	ExpectedGrade      *string            `json:"expected_grade,omitempty"`
	ExpectedAlertTypes []string           `json:"expected_alert_types,omitempty"`
}
