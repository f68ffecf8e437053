package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
	"github.com/zhukovvlad/devis-go/cmd/internal/config"
	"github.com/zhukovvlad/devis-go/cmd/internal/scoring"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/apierrors"
	"github.com/zhukovvlad/devis-go/cmd/internal/storage"
	"github.com/zhukovvlad/devis-go/cmd/pkg/logging"
)

// ScoreService владеет движками всех поддерживаемых рубрик и историей
// результатов. Движки собираются один раз при создании сервиса:
// любая некорректная рубрика валит приложение на старте, а не при
// обработке первой сметы.
type ScoreService struct {
	engines        map[string]*scoring.Engine
	defaultVersion string
	adjuster       *scoring.Adjuster
	store          *storage.ResultStore
	logger         *logging.Logger
}

// ScoreOutcome — результат оценки: правиловый результат плюс
// опциональная ML-поправка поверх него.
type ScoreOutcome struct {
	Result   *scoring.ScoreResult    `json:"result"`
	Adjusted *scoring.AdjustedResult `json:"adjusted,omitempty"`
}

// NewScoreService создает новый экземпляр ScoreService.
func NewScoreService(cfg *config.Config, store *storage.ResultStore, logger *logging.Logger) (*ScoreService, error) {
	engines := make(map[string]*scoring.Engine)
	for _, version := range scoring.AvailableRubricVersions() {
		rubric, err := scoring.RubricForVersion(version)
		if err != nil {
			return nil, err
		}
		engine, err := scoring.NewEngine(rubric, logger)
		if err != nil {
			return nil, fmt.Errorf("сборка движка для рубрики %s: %w", version, err)
		}
		engines[version] = engine
	}

	defaultVersion := cfg.Scoring.DefaultRubric
	defaultEngine, ok := engines[defaultVersion]
	if !ok {
		return nil, apierrors.NewConfigError("рубрика по умолчанию %q не поддерживается", defaultVersion)
	}

	var adjuster *scoring.Adjuster
	if cfg.Scoring.ML.Enabled {
		model := &scoring.LinearAdjustmentModel{Shift: cfg.Scoring.ML.Shift}
		var err error
		adjuster, err = scoring.NewAdjuster(defaultEngine.Rubric(), model, cfg.Scoring.ML.Blend)
		if err != nil {
			return nil, err
		}
		logger.Infof("ML-поправка включена: модель %s, доля смешивания %.2f", model.Version(), cfg.Scoring.ML.Blend)
	}

	return &ScoreService{
		engines:        engines,
		defaultVersion: defaultVersion,
		adjuster:       adjuster,
		store:          store,
		logger:         logger,
	}, nil
}

// EngineFor возвращает движок для версии рубрики; пустая версия
// означает версию по умолчанию.
func (s *ScoreService) EngineFor(version string) (*scoring.Engine, error) {
	if version == "" {
		version = s.defaultVersion
	}
	engine, ok := s.engines[version]
	if !ok {
		return nil, apierrors.NewValidationError("неизвестная версия рубрики: %q", version)
	}
	return engine, nil
}

// ScoreQuote валидирует запрос, оценивает смету выбранной рубрикой,
// применяет ML-поправку (если включена) и сохраняет результат в историю.
func (s *ScoreService) ScoreQuote(ctx context.Context, req *api_models.ScoreQuoteRequest) (*ScoreOutcome, error) {
	if strings.TrimSpace(req.Quote.QuoteID) == "" {
		return nil, apierrors.NewValidationError("quote_id не может быть пустым")
	}

	engine, err := s.EngineFor(req.RubricVersion)
	if err != nil {
		return nil, err
	}

	result := engine.CalculateScore(&req.Quote, req.Enrichment, &req.Context)

	outcome := &ScoreOutcome{Result: result}
	// Поправка применяется только поверх рубрики, под которую
	// сконфигурирована модель; правиловый результат остаётся как есть.
	if s.adjuster != nil && engine.Rubric().Version == s.defaultVersion {
		outcome.Adjusted = s.adjuster.Adjust(&req.Quote, result)
	}

	if s.store != nil {
		if err := s.store.SaveResult(ctx, result); err != nil {
			// Сохранение истории — вторичная обязанность: оценку
			// мы уже посчитали и обязаны вернуть.
			s.logger.Errorf("Результат посчитан, но не сохранён в историю: %v", err)
		}
	}

	return outcome, nil
}

// History возвращает все оценки сметы, новые первыми.
func (s *ScoreService) History(ctx context.Context, quoteID string) ([]scoring.ScoreResult, error) {
	if strings.TrimSpace(quoteID) == "" {
		return nil, apierrors.NewValidationError("quote_id не может быть пустым")
	}
	return s.store.ListResultsByQuote(ctx, quoteID)
}

// Latest возвращает актуальную оценку сметы.
func (s *ScoreService) Latest(ctx context.Context, quoteID string) (*scoring.ScoreResult, error) {
	if strings.TrimSpace(quoteID) == "" {
		return nil, apierrors.NewValidationError("quote_id не может быть пустым")
	}
	return s.store.LatestResult(ctx, quoteID)
}

// RubricVersions перечисляет поддерживаемые рубрики; первая — версия
// по умолчанию.
func (s *ScoreService) RubricVersions() (string, []string) {
	return s.defaultVersion, scoring.AvailableRubricVersions()
}

// ResultsCount возвращает общее число сохранённых оценок для /api/stats.
func (s *ScoreService) ResultsCount(ctx context.Context) (int64, error) {
	return s.store.CountResults(ctx)
}
