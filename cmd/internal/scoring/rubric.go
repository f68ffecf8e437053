package scoring

import (
	"math"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/apierrors"
)

// AxisID идентифицирует ось рубрики. Набор осей закрыт и известен
// на этапе компиляции: рубрика выбирает своё подмножество.
type AxisID string

const (
	AxisPrice        AxisID = "price"
	AxisQuality      AxisID = "quality"
	AxisTimeline     AxisID = "timeline"
	AxisCompliance   AxisID = "compliance"
	AxisFeasibility  AxisID = "feasibility"
	AxisTransparency AxisID = "transparency"
	AxisGuarantees   AxisID = "guarantees"
	AxisInnovation   AxisID = "innovation"
)

// Версии рубрик. Каждый ScoreResult штампуется версией, по которой
// он был посчитан, чтобы исторические результаты оставались сравнимыми.
const (
	RubricVersionLegacy   = "v1-legacy-1000"
	RubricVersionAdvanced = "v2-advanced-1200"
)

// weightEpsilon — допуск на сумму весов (ошибки округления float).
const weightEpsilon = 1e-6

// CriterionFunc — чистая функция оценки одного узкого аспекта сметы в [0,1].
// Критерии независимы друг от друга: никакого общего состояния и
// зависимости от порядка вычисления.
type CriterionFunc func(
	quote *api_models.ExtractedQuoteData,
	enrichment *api_models.EnrichmentContext,
	sctx *api_models.ScoringContext,
) CriterionResult

// Criterion — именованный критерий оси.
type Criterion struct {
	ID       string
	Evaluate CriterionFunc
}

// Axis — одна взвешенная категория рубрики: набор критериев плюс
// бюджет баллов. Добавление или удаление критерия меняет только
// усреднение внутри своей оси и никогда — соседние оси.
type Axis struct {
	ID        AxisID
	Label     string
	Weight    float64
	MaxPoints float64
	Criteria  []Criterion
}

// GradeThreshold — пара (порог, буква). Таблица проверяется сверху вниз:
// выигрывает первый порог, который оценка достигла.
type GradeThreshold struct {
	MinScore int
	Grade    string
}

// Rubric — именованная комбинация набора осей, весов и шкалы баллов.
type Rubric struct {
	Version        string
	TotalPoints    float64
	BaseConfidence int
	Axes           []Axis
	Scale          []GradeThreshold
}

// NewLegacyRubric собирает историческую 4-осевую рубрику на 1000 баллов
// (Цена/Качество/Сроки/Соответствие — 25/30/20/25).
func NewLegacyRubric() *Rubric {
	return &Rubric{
		Version:        RubricVersionLegacy,
		TotalPoints:    1000,
		BaseConfidence: 85,
		Axes: []Axis{
			{ID: AxisPrice, Label: "Цена", Weight: 0.25, MaxPoints: 250, Criteria: priceCriteria()},
			{ID: AxisQuality, Label: "Качество", Weight: 0.30, MaxPoints: 300, Criteria: qualityCriteria()},
			{ID: AxisTimeline, Label: "Сроки", Weight: 0.20, MaxPoints: 200, Criteria: timelineCriteria()},
			{ID: AxisCompliance, Label: "Соответствие", Weight: 0.25, MaxPoints: 250, Criteria: complianceCriteria()},
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

// NewAdvancedRubric собирает расширенную 8-осевую рубрику на 1200 баллов
// с дополнительным классом A+ для выдающихся смет.
func NewAdvancedRubric() *Rubric {
	return &Rubric{
		Version:        RubricVersionAdvanced,
		TotalPoints:    1200,
		BaseConfidence: 85,
		Axes: []Axis{
			{ID: AxisCompliance, Label: "Соответствие", Weight: 0.20, MaxPoints: 240, Criteria: complianceCriteria()},
			{ID: AxisPrice, Label: "Цена", Weight: 0.20, MaxPoints: 240, Criteria: priceCriteria()},
			{ID: AxisQuality, Label: "Качество", Weight: 0.15, MaxPoints: 180, Criteria: qualityCriteria()},
			{ID: AxisFeasibility, Label: "Реализуемость", Weight: 0.10, MaxPoints: 120, Criteria: feasibilityCriteria()},
			{ID: AxisTransparency, Label: "Прозрачность", Weight: 0.10, MaxPoints: 120, Criteria: transparencyCriteria()},
			{ID: AxisGuarantees, Label: "Гарантии", Weight: 0.10, MaxPoints: 120, Criteria: guaranteesCriteria()},
			{ID: AxisTimeline, Label: "Сроки", Weight: 0.10, MaxPoints: 120, Criteria: timelineCriteria()},
			{ID: AxisInnovation, Label: "Инновации", Weight: 0.05, MaxPoints: 60, Criteria: innovationCriteria()},
		},
		Scale: []GradeThreshold{
			{MinScore: 1080, Grade: "A+"},
			{MinScore: 960, Grade: "A"},
			{MinScore: 720, Grade: "B"},
			{MinScore: 480, Grade: "C"},
			{MinScore: 240, Grade: "D"},
			{MinScore: math.MinInt32, Grade: "E"},
		},
	}
}

// RubricForVersion возвращает рубрику по её версии.
func RubricForVersion(version string) (*Rubric, error) {
	switch version {
	case RubricVersionLegacy:
		return NewLegacyRubric(), nil
	case RubricVersionAdvanced:
		return NewAdvancedRubric(), nil
	default:
		return nil, apierrors.NewValidationError("неизвестная версия рубрики: %q", version)
	}
}

// AvailableRubricVersions перечисляет версии, которые умеет считать движок.
func AvailableRubricVersions() []string {
	return []string{RubricVersionLegacy, RubricVersionAdvanced}
}

// Validate проверяет целостность рубрики. Любая ошибка здесь — дефект
// конфигурации, а не данных сметы: она должна останавливать приложение
// на этапе конструирования движка.
func (r *Rubric) Validate() error {
	if r.Version == "" {
		return apierrors.NewConfigError("рубрика без версии")
	}
	if r.TotalPoints <= 0 {
		return apierrors.NewConfigError("рубрика %s: TotalPoints должен быть > 0, получено %f", r.Version, r.TotalPoints)
	}
	if r.BaseConfidence < 50 || r.BaseConfidence > 100 {
		return apierrors.NewConfigError("рубрика %s: BaseConfidence должен быть в [50,100], получено %d", r.Version, r.BaseConfidence)
	}
	if len(r.Axes) == 0 {
		return apierrors.NewConfigError("рубрика %s: нет осей", r.Version)
	}

	var weightSum float64
	seen := make(map[AxisID]bool, len(r.Axes))
	for _, axis := range r.Axes {
		if seen[axis.ID] {
			return apierrors.NewConfigError("рубрика %s: ось %s объявлена дважды", r.Version, axis.ID)
		}
		seen[axis.ID] = true

		if axis.MaxPoints <= 0 {
			return apierrors.NewConfigError("рубрика %s: ось %s с нулевым бюджетом баллов", r.Version, axis.ID)
		}
		if axis.Weight <= 0 {
			return apierrors.NewConfigError("рубрика %s: ось %s с неположительным весом %f", r.Version, axis.ID, axis.Weight)
		}
		if len(axis.Criteria) == 0 {
			return apierrors.NewConfigError("рубрика %s: ось %s без критериев", r.Version, axis.ID)
		}
		// Бюджет оси обязан соответствовать её доле от общей шкалы,
		// иначе формула взвешивания и простая сумма осей разойдутся.
		if math.Abs(axis.MaxPoints-axis.Weight*r.TotalPoints) > weightEpsilon {
			return apierrors.NewConfigError(
				"рубрика %s: ось %s: MaxPoints=%f не равен Weight*TotalPoints=%f",
				r.Version, axis.ID, axis.MaxPoints, axis.Weight*r.TotalPoints,
			)
		}
		weightSum += axis.Weight
	}

	if math.Abs(weightSum-1.0) > weightEpsilon {
		return apierrors.NewConfigError("рубрика %s: веса осей дают %f вместо 1.0", r.Version, weightSum)
	}

	if err := r.validateScale(); err != nil {
		return err
	}
	return nil
}

// validateScale проверяет, что пороги строго убывают и что шкала
// исчерпывающая: нижняя буква ловит любой балл, включая ноль и ниже.
func (r *Rubric) validateScale() error {
	if len(r.Scale) < 2 {
		return apierrors.NewConfigError("рубрика %s: шкала оценок слишком короткая", r.Version)
	}
	for i := 1; i < len(r.Scale); i++ {
		if r.Scale[i].MinScore >= r.Scale[i-1].MinScore {
			return apierrors.NewConfigError(
				"рубрика %s: пороги шкалы не строго убывают (%d после %d)",
				r.Version, r.Scale[i].MinScore, r.Scale[i-1].MinScore,
			)
		}
	}
	if last := r.Scale[len(r.Scale)-1]; last.MinScore > 0 {
		return apierrors.NewConfigError("рубрика %s: нижняя ступень шкалы не покрывает балл 0", r.Version)
	}
	return nil
}
