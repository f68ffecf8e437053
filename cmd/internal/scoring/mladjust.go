package scoring

import (
	"math"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/apierrors"
)

// AdjustmentModel — обученная модель поправки к правиловому баллу.
// Возвращает собственную оценку на шкале рубрики и уверенность [0,1].
type AdjustmentModel interface {
	Version() string
	Predict(quote *api_models.ExtractedQuoteData, base *ScoreResult) (score float64, confidence float64)
}

// AdjustedResult — результат ML-поправки поверх правилового результата.
// Base остаётся нетронутым: объяснимый правиловый результат всегда
// доступен для аудита, даже когда поправка включена.
type AdjustedResult struct {
	Base          *ScoreResult `json:"base"`
	AdjustedScore int          `json:"adjusted_score"`
	AdjustedGrade string       `json:"adjusted_grade"`
	Confidence    int          `json:"confidence"`
	ModelVersion  string       `json:"model_version"`
}

// Adjuster — декоратор над выводом движка: смешивает правиловый балл
// с предсказанием модели, никогда не подменяя его.
type Adjuster struct {
	rubric *Rubric
	model  AdjustmentModel
	blend  float64 // доля модельного балла в смеси, [0,1]
}

// NewAdjuster создаёт декоратор. Доля смешивания вне [0,1] —
// ошибка конфигурации.
func NewAdjuster(rubric *Rubric, model AdjustmentModel, blend float64) (*Adjuster, error) {
	if model == nil {
		return nil, apierrors.NewConfigError("ML-поправка: модель не задана")
	}
	if blend < 0 || blend > 1 {
		return nil, apierrors.NewConfigError("ML-поправка: доля смешивания %f вне [0,1]", blend)
	}
	return &Adjuster{rubric: rubric, model: model, blend: blend}, nil
}

// Adjust строит поправленный результат. Исходный ScoreResult не мутируется.
func (a *Adjuster) Adjust(quote *api_models.ExtractedQuoteData, base *ScoreResult) *AdjustedResult {
	predicted, modelConfidence := a.model.Predict(quote, base)

	// Предсказание модели зажимается в шкалу рубрики: декоратор
	// не имеет права выдать балл, невозможный для правилового движка.
	predicted = math.Max(0, math.Min(predicted, a.rubric.TotalPoints))

	blended := float64(base.Score)*(1-a.blend) + predicted*a.blend
	adjusted := int(math.Round(blended))

	// Доверие поправки — правиловое доверие, ослабленное уверенностью модели.
	confidence := int(math.Round(float64(base.Confidence) * (0.5 + 0.5*clamp01(modelConfidence))))
	if confidence < minConfidence {
		confidence = minConfidence
	}

	return &AdjustedResult{
		Base:          base,
		AdjustedScore: adjusted,
		AdjustedGrade: a.rubric.GradeFor(adjusted),
		Confidence:    confidence,
		ModelVersion:  a.model.Version(),
	}
}

// LinearAdjustmentModel — простейшая детерминированная модель:
// сдвигает правиловый балл на фиксированную долю шкалы. Служит
// значением по умолчанию и опорой для тестов, пока настоящая
// модель не подключена.
type LinearAdjustmentModel struct {
	Shift float64 // доля шкалы, может быть отрицательной
}

func (m *LinearAdjustmentModel) Version() string {
	return "linear-v1"
}

func (m *LinearAdjustmentModel) Predict(_ *api_models.ExtractedQuoteData, base *ScoreResult) (float64, float64) {
	return float64(base.Score) + m.Shift*float64(base.Score), 0.8
}
