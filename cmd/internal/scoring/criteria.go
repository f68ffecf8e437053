package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// NeutralScore — документированное нейтральное значение критерия при
// отсутствии нужных данных: "неизвестно, считаем средним". Ноль здесь
// был бы несправедлив: смета не должна терять баллы только из-за того,
// что стороннее обогащение не пришло.
const NeutralScore = 0.7

// totalsTolerance — относительный допуск при сверке суммы позиций
// с заявленным промежуточным итогом.
const totalsTolerance = 0.01

func neutralResult(id, reason string) CriterionResult {
	return CriterionResult{
		ID:            id,
		Score:         NeutralScore,
		Justification: reason,
	}
}

func result(id string, score float64, format string, args ...interface{}) CriterionResult {
	return CriterionResult{
		ID:            id,
		Score:         clamp01(score),
		Justification: fmt.Sprintf(format, args...),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseQuoteDate разбирает дату из анализатора документов.
// Анализатор обещает RFC3339, но на практике присылает и голую дату.
func parseQuoteDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// lineItemsSum считает сумму позиций сметы.
func lineItemsSum(quote *api_models.ExtractedQuoteData) float64 {
	var sum float64
	for _, item := range quote.LineItems {
		sum += item.LineTotal
	}
	return sum
}

// totalsReconciled проверяет, сходится ли сумма позиций с заявленным
// промежуточным итогом в пределах допуска. Вторым значением возвращает
// относительное расхождение.
func totalsReconciled(quote *api_models.ExtractedQuoteData) (bool, float64) {
	if len(quote.LineItems) == 0 || quote.Subtotal <= 0 {
		// Сверять нечего: позиции или итог не извлечены.
		return true, 0
	}
	sum := lineItemsSum(quote)
	diff := math.Abs(sum-quote.Subtotal) / quote.Subtotal
	return diff <= totalsTolerance, diff
}

// deviationScore переводит относительное отклонение |value-ref|/ref
// в оценку [0,1]: нулевое отклонение — 1.0, отклонение tolerance и
// больше — линейно вниз до нуля при допуске*4.
func deviationScore(value, ref, tolerance float64) float64 {
	if ref <= 0 {
		return NeutralScore
	}
	dev := math.Abs(value-ref) / ref
	if dev <= tolerance {
		return 1
	}
	return clamp01(1 - (dev-tolerance)/(tolerance*3))
}
