package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// priceCriteria — критерии оси "Цена": позиция итоговой суммы в региональном
// распределении, согласованность с эталонными ценами и внутренняя
// арифметика сметы.
func priceCriteria() []Criterion {
	return []Criterion{
		{ID: "price_benchmark_position", Evaluate: evalPriceBenchmarkPosition},
		{ID: "price_reference_coherence", Evaluate: evalPriceReferenceCoherence},
		{ID: "price_totals_arithmetic", Evaluate: evalTotalsArithmetic},
		{ID: "price_line_arithmetic", Evaluate: evalLineArithmetic},
	}
}

// evalPriceBenchmarkPosition оценивает итоговую сумму относительно
// регионального среднего. Лучшая оценка — близко к среднему или умеренно
// ниже; сильное превышение и подозрительно низкая цена штрафуются.
func evalPriceBenchmarkPosition(
	quote *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "price_benchmark_position"

	if enrichment == nil || enrichment.Benchmark == nil || enrichment.Benchmark.AveragePrice <= 0 {
		return neutralResult(id, "региональная статистика цен недоступна")
	}
	if quote.Total <= 0 {
		return neutralResult(id, "итоговая сумма сметы не извлечена")
	}

	ratio := quote.Total / enrichment.Benchmark.AveragePrice
	switch {
	case ratio < 0.5:
		// Демпинг почти всегда означает скрытые доплаты или урезанный объём работ.
		return result(id, 0.3, "цена подозрительно низкая: %.0f%% от регионального среднего", ratio*100)
	case ratio <= 1.1:
		return result(id, 1.0, "цена в пределах регионального среднего (%.0f%%)", ratio*100)
	case ratio <= 1.3:
		return result(id, 0.7, "цена умеренно выше среднего (%.0f%%)", ratio*100)
	case ratio <= 1.6:
		return result(id, 0.4, "цена заметно выше среднего (%.0f%%)", ratio*100)
	default:
		return result(id, 0.1, "цена существенно выше среднего (%.0f%%)", ratio*100)
	}
}

// evalPriceReferenceCoherence сверяет цены за единицу с эталонным
// справочником по виду работ. Сопоставление позиций — по вхождению
// ключа справочника в описание позиции.
func evalPriceReferenceCoherence(
	quote *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "price_reference_coherence"

	if enrichment == nil || enrichment.Prices == nil || len(enrichment.Prices.UnitPrices) == 0 {
		return neutralResult(id, "справочник эталонных цен недоступен")
	}

	// Ключи справочника обходим отсортированными: результат критерия
	// не должен зависеть от порядка обхода map.
	keys := make([]string, 0, len(enrichment.Prices.UnitPrices))
	for key := range enrichment.Prices.UnitPrices {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var matched int
	var sum float64
	for _, item := range quote.LineItems {
		desc := strings.ToLower(item.Description)
		for _, key := range keys {
			refPrice := enrichment.Prices.UnitPrices[key]
			if refPrice <= 0 || !strings.Contains(desc, strings.ToLower(key)) {
				continue
			}
			matched++
			sum += deviationScore(item.UnitPrice, refPrice, 0.15)
			break
		}
	}

	if matched == 0 {
		return neutralResult(id, "ни одна позиция не сопоставлена со справочником цен")
	}
	avg := sum / float64(matched)
	return result(id, avg, "сопоставлено %d позиций со справочником, согласованность %.0f%%", matched, avg*100)
}

// evalTotalsArithmetic проверяет внешнюю арифметику сметы:
// subtotal + налог = итог, сумма позиций = subtotal.
func evalTotalsArithmetic(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "price_totals_arithmetic"

	if quote.Total <= 0 && quote.Subtotal <= 0 {
		return neutralResult(id, "итоги сметы не извлечены")
	}

	score := 1.0
	var issues []string

	if ok, diff := totalsReconciled(quote); !ok {
		score -= 0.5
		issues = append(issues, fmt.Sprintf("сумма позиций расходится с промежуточным итогом на %.1f%%", diff*100))
	}

	if quote.Subtotal > 0 && quote.Total > 0 {
		expected := quote.Subtotal + quote.TaxAmount
		if math.Abs(expected-quote.Total)/quote.Total > totalsTolerance {
			score -= 0.5
			issues = append(issues, "итог не равен сумме без налога плюс налог")
		}
	}

	if len(issues) == 0 {
		return result(id, score, "итоги сметы арифметически согласованы")
	}
	return result(id, score, "арифметика итогов: %s", strings.Join(issues, "; "))
}

// evalLineArithmetic проверяет внутреннюю арифметику позиций:
// количество × цена за единицу = сумма позиции.
func evalLineArithmetic(
	quote *api_models.ExtractedQuoteData,
	_ *api_models.EnrichmentContext,
	_ *api_models.ScoringContext,
) CriterionResult {
	const id = "price_line_arithmetic"

	var checked, consistent int
	for _, item := range quote.LineItems {
		if item.Quantity <= 0 || item.UnitPrice <= 0 || item.LineTotal <= 0 {
			continue
		}
		checked++
		expected := item.Quantity * item.UnitPrice
		if math.Abs(expected-item.LineTotal)/item.LineTotal <= totalsTolerance {
			consistent++
		}
	}

	if checked == 0 {
		return neutralResult(id, "в позициях нет полных троек количество/цена/сумма")
	}
	share := float64(consistent) / float64(checked)
	return result(id, share, "%d из %d позиций арифметически согласованы", consistent, checked)
}
