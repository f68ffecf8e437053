package scoring

import (
	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// ComparePrice позиционирует итоговую сумму сметы в региональном
// распределении цен: percentile = clamp((v-min)/(max-min)*100, 0, 100).
// Значение на нижней границе и ниже даёт ровно 0, на верхней и выше —
// ровно 100. Вырожденный диапазон (max <= min) не делится на ноль:
// перцентиль остаётся неопределённым (nil).
func ComparePrice(total float64, bench *api_models.RegionalBenchmarkData) *RegionalBenchmark {
	if bench == nil {
		return nil
	}

	out := &RegionalBenchmark{
		Region:             bench.Region,
		AveragePricePerSqm: bench.AveragePricePerSqm,
		Comparison: BenchmarkComparison{
			QuotePrice:   total,
			AveragePrice: bench.AveragePrice,
			MinPrice:     bench.MinPrice,
			MaxPrice:     bench.MaxPrice,
		},
	}

	width := bench.MaxPrice - bench.MinPrice
	if width <= 0 {
		return out
	}

	percentile := (total - bench.MinPrice) / width * 100
	if percentile < 0 {
		percentile = 0
	}
	if percentile > 100 {
		percentile = 100
	}
	out.Percentile = &percentile
	return out
}
