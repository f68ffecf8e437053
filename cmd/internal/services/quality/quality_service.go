package quality

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
	"github.com/zhukovvlad/devis-go/cmd/internal/scoring"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/apierrors"
	"github.com/zhukovvlad/devis-go/cmd/internal/util"
	"github.com/zhukovvlad/devis-go/cmd/pkg/logging"
)

const (
	// DefaultConcurrency — размер пула воркеров, если конфигурация
	// не задала свой.
	DefaultConcurrency = 4

	// MaxSamples ограничивает размер одного прогона, чтобы пакетный
	// запрос не съедал процессор бесконтрольно.
	MaxSamples = 10000

	reportVersion = "quality-report-v1"
)

// Пороговые значения, ниже/выше которых прогон генерирует
// текстовые рекомендации по улучшению рубрики.
const (
	completenessThreshold = 0.70
	accuracyThreshold     = 0.80
	alertFPRateThreshold  = 0.20
	alertFNRateThreshold  = 0.20
	latencyThresholdMs    = 50.0
)

// Runner прогоняет движок оценки по выборке исторических смет
// и меряет качество самой рубрики: точность, стабильность, полноту
// данных, задержку и ложные срабатывания предупреждений.
// Каждый вызов оценки независим, поэтому выборка обрабатывается
// пулом воркеров; порядок внутри пакета не важен — наружу уходят
// только агрегаты.
type Runner struct {
	engine      *scoring.Engine
	logger      *logging.Logger
	concurrency int
}

// NewRunner создает новый экземпляр Runner.
func NewRunner(engine *scoring.Engine, logger *logging.Logger, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Runner{
		engine:      engine,
		logger:      logger,
		concurrency: concurrency,
	}
}

// WithEngine возвращает копию Runner, привязанную к другому движку.
// Используется, когда прогон запрошен для конкретной версии рубрики.
func (r *Runner) WithEngine(engine *scoring.Engine) *Runner {
	return &Runner{
		engine:      engine,
		logger:      r.logger,
		concurrency: r.concurrency,
	}
}

// Report — версионированный результат пакетного прогона.
type Report struct {
	Version       string    `json:"version"`
	RubricVersion string    `json:"rubric_version"`
	RanAt         time.Time `json:"ran_at"`
	SampleCount   int       `json:"sample_count"`

	// GradeAccuracy — доля смет, где буква совпала с экспертной разметкой.
	// -1, если в выборке не было размеченных смет.
	GradeAccuracy float64 `json:"grade_accuracy"`

	// ScoreStability — доля смет, где повторный прогон дал идентичный
	// результат (без учёта ID и временной метки).
	ScoreStability float64 `json:"score_stability"`

	// DataCompleteness — средняя доля заполненных ключевых полей входа.
	DataCompleteness float64 `json:"data_completeness"`

	AvgLatencyMs float64 `json:"avg_latency_ms"`
	P95LatencyMs float64 `json:"p95_latency_ms"`

	// Доли ложных срабатываний/пропусков предупреждений относительно
	// экспертной разметки. -1, если разметки не было.
	AlertFalsePositiveRate float64 `json:"alert_false_positive_rate"`
	AlertFalseNegativeRate float64 `json:"alert_false_negative_rate"`

	Recommendations []string `json:"recommendations"`
}

// sampleOutcome — результат обработки одной сметы из выборки.
type sampleOutcome struct {
	latency      time.Duration
	completeness float64
	stable       bool
	gradeKnown   bool
	gradeMatch   bool
	alertsKnown  bool
	falsePos     int
	falseNeg     int
	emitted      int
	expected     int
}

// Run исполняет пакетный прогон. Между сметами поддерживается
// кооперативная отмена через ctx; внутри одной оценки отмены нет —
// она короткая и чисто процессорная.
func (r *Runner) Run(ctx context.Context, samples []api_models.QualitySample) (*Report, error) {
	if len(samples) == 0 {
		return nil, apierrors.NewValidationError("пустая выборка: нечего прогонять")
	}
	if len(samples) > MaxSamples {
		return nil, apierrors.NewValidationError("выборка из %d смет превышает лимит %d", len(samples), MaxSamples)
	}

	r.logger.Infof("Пакетный прогон качества: %d смет, рубрика %s, воркеров %d",
		len(samples), r.engine.Rubric().Version, r.concurrency)

	outcomes := make([]sampleOutcome, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i := range samples {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := r.processSample(&samples[i])
			if err != nil {
				return err
			}
			outcomes[i] = *outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("пакетный прогон прерван: %w", err)
	}

	report := r.aggregate(outcomes)
	r.logger.Infof("Прогон завершён: точность %.2f, стабильность %.2f, полнота %.2f",
		report.GradeAccuracy, report.ScoreStability, report.DataCompleteness)
	return report, nil
}

// processSample оценивает одну смету дважды: первый прогон меряет
// задержку, второй — стабильность результата.
func (r *Runner) processSample(sample *api_models.QualitySample) (*sampleOutcome, error) {
	started := time.Now()
	first := r.engine.CalculateScore(&sample.Quote, sample.Enrichment, &sample.Context)
	latency := time.Since(started)

	second := r.engine.CalculateScore(&sample.Quote, sample.Enrichment, &sample.Context)

	firstFP, err := resultFingerprint(first)
	if err != nil {
		return nil, fmt.Errorf("отпечаток результата сметы %s: %w", sample.QuoteID, err)
	}
	secondFP, err := resultFingerprint(second)
	if err != nil {
		return nil, fmt.Errorf("отпечаток результата сметы %s: %w", sample.QuoteID, err)
	}

	outcome := &sampleOutcome{
		latency:      latency,
		completeness: sampleCompleteness(sample),
		stable:       firstFP == secondFP,
	}

	if sample.ExpectedGrade != nil {
		outcome.gradeKnown = true
		outcome.gradeMatch = first.Grade == *sample.ExpectedGrade
	}

	if sample.ExpectedAlertTypes != nil {
		outcome.alertsKnown = true
		expected := make(map[string]bool, len(sample.ExpectedAlertTypes))
		for _, t := range sample.ExpectedAlertTypes {
			expected[t] = true
		}
		emitted := make(map[string]bool, len(first.Alerts))
		for _, a := range first.Alerts {
			emitted[a.Type] = true
		}
		outcome.emitted = len(emitted)
		outcome.expected = len(expected)
		for t := range emitted {
			if !expected[t] {
				outcome.falsePos++
			}
		}
		for t := range expected {
			if !emitted[t] {
				outcome.falseNeg++
			}
		}
	}

	return outcome, nil
}

func (r *Runner) aggregate(outcomes []sampleOutcome) *Report {
	report := &Report{
		Version:       reportVersion,
		RubricVersion: r.engine.Rubric().Version,
		RanAt:         time.Now().UTC(),
		SampleCount:   len(outcomes),
	}

	var stable, gradeKnown, gradeMatch int
	var completenessSum float64
	var emitted, expected, falsePos, falseNeg int
	var alertsKnown bool
	latencies := make([]float64, 0, len(outcomes))

	for _, o := range outcomes {
		if o.stable {
			stable++
		}
		completenessSum += o.completeness
		latencies = append(latencies, float64(o.latency.Microseconds())/1000.0)
		if o.gradeKnown {
			gradeKnown++
			if o.gradeMatch {
				gradeMatch++
			}
		}
		if o.alertsKnown {
			alertsKnown = true
			emitted += o.emitted
			expected += o.expected
			falsePos += o.falsePos
			falseNeg += o.falseNeg
		}
	}

	n := float64(len(outcomes))
	report.ScoreStability = float64(stable) / n
	report.DataCompleteness = completenessSum / n

	report.GradeAccuracy = -1
	if gradeKnown > 0 {
		report.GradeAccuracy = float64(gradeMatch) / float64(gradeKnown)
	}

	report.AlertFalsePositiveRate = -1
	report.AlertFalseNegativeRate = -1
	if alertsKnown {
		if emitted > 0 {
			report.AlertFalsePositiveRate = float64(falsePos) / float64(emitted)
		} else {
			report.AlertFalsePositiveRate = 0
		}
		if expected > 0 {
			report.AlertFalseNegativeRate = float64(falseNeg) / float64(expected)
		} else {
			report.AlertFalseNegativeRate = 0
		}
	}

	sort.Float64s(latencies)
	var sum float64
	for _, l := range latencies {
		sum += l
	}
	report.AvgLatencyMs = sum / n
	report.P95LatencyMs = latencies[int(float64(len(latencies)-1)*0.95)]

	report.Recommendations = thresholdRecommendations(report)
	return report
}

// thresholdRecommendations переводит агрегаты в текстовые советы
// по улучшению рубрики и пайплайна извлечения.
func thresholdRecommendations(report *Report) []string {
	recs := []string{}

	if report.DataCompleteness < completenessThreshold {
		recs = append(recs, fmt.Sprintf(
			"Полнота данных %.0f%% ниже порога %.0f%%: улучшите извлечение полей из документов",
			report.DataCompleteness*100, completenessThreshold*100))
	}
	if report.GradeAccuracy >= 0 && report.GradeAccuracy < accuracyThreshold {
		recs = append(recs, fmt.Sprintf(
			"Точность букв %.0f%% ниже порога %.0f%%: пересмотрите веса осей или пороги шкалы",
			report.GradeAccuracy*100, accuracyThreshold*100))
	}
	if report.ScoreStability < 1.0 {
		recs = append(recs, "Повторные прогоны дают разные результаты: проверьте критерии на скрытое состояние")
	}
	if report.AlertFalsePositiveRate > alertFPRateThreshold {
		recs = append(recs, fmt.Sprintf(
			"Доля ложных предупреждений %.0f%% выше порога: ослабьте пороги правил предупреждений",
			report.AlertFalsePositiveRate*100))
	}
	if report.AlertFalseNegativeRate > alertFNRateThreshold {
		recs = append(recs, fmt.Sprintf(
			"Доля пропущенных предупреждений %.0f%% выше порога: ужесточите пороги правил предупреждений",
			report.AlertFalseNegativeRate*100))
	}
	if report.AvgLatencyMs > latencyThresholdMs {
		recs = append(recs, fmt.Sprintf(
			"Средняя задержка оценки %.1f мс выше порога %.0f мс: профилируйте критерии",
			report.AvgLatencyMs, latencyThresholdMs))
	}

	return recs
}

// sampleCompleteness считает долю заполненных ключевых полей входа —
// метрику качества извлечения, а не самой сметы.
func sampleCompleteness(sample *api_models.QualitySample) float64 {
	var present, total float64

	check := func(ok bool) {
		total++
		if ok {
			present++
		}
	}

	quote := &sample.Quote
	check(quote.CompanyName != "")
	check(quote.CompanyLegalID != "")
	check(quote.ClientName != "")
	check(quote.ProjectDescription != "")
	check(len(quote.LineItems) > 0)
	check(quote.Subtotal > 0)
	check(quote.Total > 0)
	check(quote.IssueDate != "")
	check(quote.ValidUntil != "")
	check(quote.StartDate != "" && quote.EndDate != "")
	check(sample.Enrichment != nil && sample.Enrichment.Company != nil)
	check(sample.Enrichment != nil && sample.Enrichment.Benchmark != nil)

	return present / total
}

// resultFingerprint — отпечаток результата без эфемерных полей
// (ID и временной метки).
func resultFingerprint(result *scoring.ScoreResult) (string, error) {
	stripped := *result
	stripped.ID = ""
	stripped.ComputedAt = time.Time{}
	return util.FingerprintJSON(stripped)
}
