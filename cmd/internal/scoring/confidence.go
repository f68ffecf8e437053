package scoring

import "math"

// Границы доверия: даже при максимальном разбросе осей мы сообщаем
// не менее 50%, при нулевом — не более 100%.
const (
	minConfidence = 50
	maxConfidence = 100

	// confidencePenaltyFactor масштабирует среднее абсолютное отклонение
	// процентов осей в штраф к базовому доверию.
	confidencePenaltyFactor = 1.5
)

// estimateConfidence выводит процент доверия из разброса осей.
// Сам балл может выглядеть пристойно при дикой рассогласованности осей
// (отличная цена при провальном соответствии) — доверие сообщает
// "этой единственной цифре стоит верить меньше" независимо от буквы.
//
// confidence = clamp(base − penalty, 50, 100), где penalty растёт
// со средним абсолютным отклонением процентов осей от их среднего.
func estimateConfidence(base int, breakdown []AxisScore) int {
	if len(breakdown) == 0 {
		return minConfidence
	}

	var mean float64
	for _, axis := range breakdown {
		mean += axis.Percentage
	}
	mean /= float64(len(breakdown))

	var mad float64
	for _, axis := range breakdown {
		mad += math.Abs(axis.Percentage - mean)
	}
	mad /= float64(len(breakdown))

	confidence := base - int(math.Round(mad*confidencePenaltyFactor))
	if confidence < minConfidence {
		return minConfidence
	}
	if confidence > maxConfidence {
		return maxConfidence
	}
	return confidence
}
