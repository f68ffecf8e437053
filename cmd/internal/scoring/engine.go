package scoring

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
	"github.com/zhukovvlad/devis-go/cmd/pkg/logging"
)

// Engine — детерминированный оценщик смет по одной рубрике.
// Движок не хранит изменяемого состояния и не делает IO: его безопасно
// вызывать конкурентно без ограничений. Всё обогащение приходит
// готовым в аргументах — сетевые сбои коллабораторов движок видит
// только как отсутствующие поля.
type Engine struct {
	rubric *Rubric
	logger *logging.Logger
}

// NewEngine валидирует рубрику и создаёт движок. Ошибка конфигурации
// рубрики — дефект приложения: она возвращается здесь один раз,
// а не всплывает на каждом вызове оценки.
func NewEngine(rubric *Rubric, logger *logging.Logger) (*Engine, error) {
	if err := rubric.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		rubric: rubric,
		logger: logger,
	}, nil
}

// Rubric возвращает активную рубрику движка.
func (e *Engine) Rubric() *Rubric {
	return e.rubric
}

// CalculateScore оценивает смету и собирает неизменяемый ScoreResult.
// Контракт: для любого синтаксически валидного входа результат
// возвращается всегда — неполные данные понижают балл через
// нейтральные критерии и предупреждения, но никогда не прерывают оценку.
func (e *Engine) CalculateScore(
	quote *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	sctx *api_models.ScoringContext,
) *ScoreResult {
	breakdown := make([]AxisScore, 0, len(e.rubric.Axes))

	// Оси независимы: порядок обхода не влияет на результат.
	var weightedSum float64
	for _, axis := range e.rubric.Axes {
		axisScore := e.evaluateAxis(axis, quote, enrichment, sctx)
		breakdown = append(breakdown, axisScore)
		weightedSum += (axisScore.Score / axisScore.MaxPoints) * axis.Weight
	}

	finalScore := int(math.Round(weightedSum * e.rubric.TotalPoints))
	grade := e.rubric.GradeFor(finalScore)
	confidence := estimateConfidence(e.rubric.BaseConfidence, breakdown)

	alerts := generateAlerts(quote, enrichment, breakdown)
	recommendations := generateRecommendations(breakdown)

	var benchmark *RegionalBenchmark
	if enrichment != nil && enrichment.Benchmark != nil {
		benchmark = ComparePrice(quote.Total, enrichment.Benchmark)
	}

	result := &ScoreResult{
		ID:              uuid.NewString(),
		QuoteID:         quote.QuoteID,
		Score:           finalScore,
		Grade:           grade,
		Confidence:      confidence,
		Breakdown:       breakdown,
		Alerts:          alerts,
		Recommendations: recommendations,
		Benchmark:       benchmark,
		RubricVersion:   e.rubric.Version,
		ComputedAt:      time.Now().UTC(),
	}

	e.logger.WithFields(logrus.Fields{
		"quote_id": quote.QuoteID,
		"rubric":   e.rubric.Version,
		"score":    finalScore,
		"grade":    grade,
	}).Infof("Смета оценена: %d/%d (%s), доверие %d%%, предупреждений %d",
		finalScore, int(e.rubric.TotalPoints), grade, confidence, len(alerts))

	return result
}

// evaluateAxis агрегирует критерии оси: среднее арифметическое оценок
// в [0,1], масштабированное на бюджет баллов оси.
func (e *Engine) evaluateAxis(
	axis Axis,
	quote *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	sctx *api_models.ScoringContext,
) AxisScore {
	criteria := make([]CriterionResult, 0, len(axis.Criteria))

	var sum float64
	for _, criterion := range axis.Criteria {
		cr := criterion.Evaluate(quote, enrichment, sctx)
		cr.Score = clamp01(cr.Score)
		criteria = append(criteria, cr)
		sum += cr.Score
	}

	mean := sum / float64(len(axis.Criteria))
	score := mean * axis.MaxPoints

	return AxisScore{
		ID:         axis.ID,
		Label:      axis.Label,
		Score:      score,
		MaxPoints:  axis.MaxPoints,
		Percentage: mean * 100,
		Weight:     axis.Weight,
		Criteria:   criteria,
	}
}
