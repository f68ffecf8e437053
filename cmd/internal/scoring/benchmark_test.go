package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

func benchData(avg, min, max float64) *api_models.RegionalBenchmarkData {
	return &api_models.RegionalBenchmarkData{
		Region:       "Ile-de-France",
		AveragePrice: avg,
		MinPrice:     min,
		MaxPrice:     max,
	}
}

// Сценарий из постановки: итог 15 000 при диапазоне [10 000, 20 000]
// даёт ровно 50-й перцентиль.
func TestComparePriceMidRange(t *testing.T) {
	out := ComparePrice(15000, benchData(14000, 10000, 20000))

	require.NotNil(t, out)
	require.NotNil(t, out.Percentile)
	assert.Equal(t, 50.0, *out.Percentile)
	assert.Equal(t, 15000.0, out.Comparison.QuotePrice)
	assert.Equal(t, 14000.0, out.Comparison.AveragePrice)
}

func TestComparePriceClampedAtBounds(t *testing.T) {
	low := ComparePrice(10000, benchData(14000, 10000, 20000))
	require.NotNil(t, low.Percentile)
	assert.Equal(t, 0.0, *low.Percentile)

	below := ComparePrice(2000, benchData(14000, 10000, 20000))
	require.NotNil(t, below.Percentile)
	assert.Equal(t, 0.0, *below.Percentile)

	high := ComparePrice(20000, benchData(14000, 10000, 20000))
	require.NotNil(t, high.Percentile)
	assert.Equal(t, 100.0, *high.Percentile)

	above := ComparePrice(99999, benchData(14000, 10000, 20000))
	require.NotNil(t, above.Percentile)
	assert.Equal(t, 100.0, *above.Percentile)
}

// Вырожденный диапазон не делится на ноль: перцентиль остаётся
// неопределённым, но сравнение с цифрами всё равно возвращается.
func TestComparePriceDegenerateRange(t *testing.T) {
	out := ComparePrice(15000, benchData(15000, 15000, 15000))

	require.NotNil(t, out)
	assert.Nil(t, out.Percentile)
	assert.Equal(t, 15000.0, out.Comparison.MinPrice)
}

func TestComparePriceInvertedRange(t *testing.T) {
	out := ComparePrice(15000, benchData(15000, 20000, 10000))

	require.NotNil(t, out)
	assert.Nil(t, out.Percentile)
}

func TestComparePriceNilBenchmark(t *testing.T) {
	assert.Nil(t, ComparePrice(15000, nil))
}
