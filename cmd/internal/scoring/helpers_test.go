package scoring

import (
	"math"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
	"github.com/zhukovvlad/devis-go/cmd/pkg/logging"
)

// constantCriterion — критерий, всегда возвращающий фиксированную оценку.
// Позволяет собирать синтетические рубрики с точно известными баллами осей.
func constantCriterion(id string, score float64) CriterionFunc {
	return func(_ *api_models.ExtractedQuoteData, _ *api_models.EnrichmentContext, _ *api_models.ScoringContext) CriterionResult {
		return CriterionResult{ID: id, Score: score, Justification: "синтетический критерий"}
	}
}

// syntheticRubric собирает 4-осевую рубрику на 1000 баллов, где каждая ось
// выдаёт заранее заданную долю своего максимума.
func syntheticRubric(price, quality, timeline, compliance float64) *Rubric {
	axis := func(id AxisID, label string, share float64) Axis {
		return Axis{
			ID:        id,
			Label:     label,
			Weight:    0.25,
			MaxPoints: 250,
			Criteria:  []Criterion{{ID: string(id) + "_const", Evaluate: constantCriterion(string(id)+"_const", share)}},
		}
	}
	return &Rubric{
		Version:        "test-synthetic-1000",
		TotalPoints:    1000,
		BaseConfidence: 85,
		Axes: []Axis{
			axis(AxisPrice, "Цена", price),
			axis(AxisQuality, "Качество", quality),
			axis(AxisTimeline, "Сроки", timeline),
			axis(AxisCompliance, "Соответствие", compliance),
		},
		Scale: []GradeThreshold{
			{MinScore: 800, Grade: "A"},
			{MinScore: 600, Grade: "B"},
			{MinScore: 400, Grade: "C"},
			{MinScore: 200, Grade: "D"},
			{MinScore: math.MinInt32, Grade: "E"},
		},
	}
}

func newTestEngine(rubric *Rubric) (*Engine, error) {
	return NewEngine(rubric, logging.GetLogger())
}
