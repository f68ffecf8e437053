package scoring

import (
	"time"
)

// Severity — уровень серьёзности предупреждения.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Priority — приоритет рекомендации.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Типы предупреждений. Один тип может появиться в результате
// не более одного раза за вызов оценки.
const (
	AlertMissingLegalID        = "MISSING_LEGAL_ID"
	AlertInconsistentTotals    = "INCONSISTENT_TOTALS"
	AlertEnrichmentUnavailable = "ENRICHMENT_UNAVAILABLE"
	AlertQuoteExpired          = "QUOTE_EXPIRED"
	AlertConformityCritical    = "CONFORMITY_CRITICAL"
	AlertQualityCritical       = "QUALITY_CRITICAL"
	AlertPriceSuspicious       = "PRICE_SUSPICIOUS"
	AlertAxisLow               = "AXIS_LOW"
)

// CriterionResult — результат одного узкого критерия: нормированная оценка
// в [0,1] и текстовое обоснование. Живёт только внутри вызова оценки,
// в хранилище не попадает отдельно от разбивки по осям.
type CriterionResult struct {
	ID            string  `json:"id"`
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

// AxisScore — агрегированная оценка одной оси рубрики.
// Инвариант: 0 <= Score <= MaxPoints.
type AxisScore struct {
	ID         AxisID            `json:"axis"`
	Label      string            `json:"label"`
	Score      float64           `json:"score"`
	MaxPoints  float64           `json:"max_points"`
	Percentage float64           `json:"percentage"`
	Weight     float64           `json:"weight"`
	Criteria   []CriterionResult `json:"criteria,omitempty"`
}

// Alert — зафиксированная проблема сметы или её оценки.
type Alert struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Recommendation — необязательный к исполнению совет по улучшению сметы.
type Recommendation struct {
	Category   string   `json:"category"`
	Priority   Priority `json:"priority"`
	Suggestion string   `json:"suggestion"`
	Impact     string   `json:"impact,omitempty"`
}

// BenchmarkComparison — исходные цифры сравнения с региональной статистикой.
type BenchmarkComparison struct {
	QuotePrice   float64 `json:"quote_price"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

// RegionalBenchmark — позиция сметы в региональном распределении цен.
// Percentile == nil означает "позицию определить нельзя"
// (вырожденный диапазон min == max).
type RegionalBenchmark struct {
	Region             string              `json:"region"`
	AveragePricePerSqm float64             `json:"average_price_per_sqm,omitempty"`
	Percentile         *float64            `json:"percentile,omitempty"`
	Comparison         BenchmarkComparison `json:"comparison"`
}

// ScoreResult — итоговая запись оценки. Создаётся заново при каждом вызове
// и никогда не мутируется; смета может накапливать несколько результатов
// (пере-оценка после пере-обогащения), каждый со своей версией рубрики
// и временной меткой. Актуальным для отображения считается последний
// по ComputedAt, старые сохраняются для аудита.
type ScoreResult struct {
	ID              string             `json:"id"`
	QuoteID         string             `json:"quote_id"`
	Score           int                `json:"score"`
	Grade           string             `json:"grade"`
	Confidence      int                `json:"confidence"`
	Breakdown       []AxisScore        `json:"breakdown"`
	Alerts          []Alert            `json:"alerts"`
	Recommendations []Recommendation   `json:"recommendations"`
	Benchmark       *RegionalBenchmark `json:"benchmark,omitempty"`
	RubricVersion   string             `json:"rubric_version"`
	ComputedAt      time.Time          `json:"computed_at"`
}
