package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/zhukovvlad/devis-go/cmd/internal/scoring"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/apierrors"
	"github.com/zhukovvlad/devis-go/cmd/internal/util"
	"github.com/zhukovvlad/devis-go/cmd/pkg/logging"
)

// ResultStore хранит историю оценок смет. Результаты никогда не
// обновляются на месте: каждая пере-оценка добавляет новую запись,
// актуальной для отображения считается последняя по computed_at,
// старые записи остаются для аудита.
type ResultStore struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewResultStore создает новый экземпляр ResultStore.
func NewResultStore(db *sql.DB, logger *logging.Logger) *ResultStore {
	return &ResultStore{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema создаёт таблицу результатов, если её ещё нет.
// Проектирование долговременной схемы — вне зоны ответственности
// сервиса, поэтому здесь только логическая форма записи.
func (s *ResultStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS score_results (
	id              TEXT PRIMARY KEY,
	quote_id        TEXT NOT NULL,
	score           INTEGER NOT NULL,
	grade           TEXT NOT NULL,
	confidence      INTEGER NOT NULL,
	breakdown       JSONB NOT NULL,
	alerts          JSONB NOT NULL,
	recommendations JSONB NOT NULL,
	benchmark       JSONB,
	rubric_version  TEXT NOT NULL,
	computed_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_score_results_quote ON score_results (quote_id, computed_at DESC);`

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("не удалось создать схему score_results: %w", err)
	}
	return nil
}

// SaveResult добавляет новую запись оценки.
func (s *ResultStore) SaveResult(ctx context.Context, result *scoring.ScoreResult) error {
	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("сериализация разбивки по осям: %w", err)
	}
	alerts, err := json.Marshal(result.Alerts)
	if err != nil {
		return fmt.Errorf("сериализация предупреждений: %w", err)
	}
	recommendations, err := json.Marshal(result.Recommendations)
	if err != nil {
		return fmt.Errorf("сериализация рекомендаций: %w", err)
	}

	var benchmarkJSON *string
	if result.Benchmark != nil {
		b, err := json.Marshal(result.Benchmark)
		if err != nil {
			return fmt.Errorf("сериализация бенчмарка: %w", err)
		}
		str := string(b)
		benchmarkJSON = &str
	}

	const query = `
INSERT INTO score_results
	(id, quote_id, score, grade, confidence, breakdown, alerts, recommendations, benchmark, rubric_version, computed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.db.ExecContext(ctx, query,
		result.ID,
		result.QuoteID,
		result.Score,
		result.Grade,
		result.Confidence,
		breakdown,
		alerts,
		recommendations,
		util.NullableString(benchmarkJSON),
		result.RubricVersion,
		result.ComputedAt,
	)
	if err != nil {
		s.logger.Errorf("Не удалось сохранить результат оценки %s: %v", result.ID, err)
		return fmt.Errorf("сохранение результата оценки: %w", err)
	}

	s.logger.Infof("Результат оценки %s для сметы %s сохранён (рубрика %s)",
		result.ID, result.QuoteID, result.RubricVersion)
	return nil
}

// ListResultsByQuote возвращает всю историю оценок сметы,
// новые записи первыми.
func (s *ResultStore) ListResultsByQuote(ctx context.Context, quoteID string) ([]scoring.ScoreResult, error) {
	const query = `
SELECT id, quote_id, score, grade, confidence, breakdown, alerts, recommendations, benchmark, rubric_version, computed_at
FROM score_results
WHERE quote_id = $1
ORDER BY computed_at DESC`

	rows, err := s.db.QueryContext(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("выборка истории оценок: %w", err)
	}
	defer rows.Close()

	var results []scoring.ScoreResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("обход истории оценок: %w", err)
	}

	if len(results) == 0 {
		return nil, apierrors.NewNotFoundError("для сметы %s нет ни одной оценки", quoteID)
	}
	return results, nil
}

// LatestResult возвращает актуальную (последнюю по времени) оценку сметы.
func (s *ResultStore) LatestResult(ctx context.Context, quoteID string) (*scoring.ScoreResult, error) {
	const query = `
SELECT id, quote_id, score, grade, confidence, breakdown, alerts, recommendations, benchmark, rubric_version, computed_at
FROM score_results
WHERE quote_id = $1
ORDER BY computed_at DESC
LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, quoteID)
	result, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, apierrors.NewNotFoundError("для сметы %s нет ни одной оценки", quoteID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CountResults возвращает общее число сохранённых оценок.
func (s *ResultStore) CountResults(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM score_results`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("подсчёт результатов оценки: %w", err)
	}
	return count, nil
}

// scanner покрывает и *sql.Row, и *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(row scanner) (*scoring.ScoreResult, error) {
	var result scoring.ScoreResult
	var breakdown, alerts, recommendations []byte
	var benchmark sql.NullString

	err := row.Scan(
		&result.ID,
		&result.QuoteID,
		&result.Score,
		&result.Grade,
		&result.Confidence,
		&breakdown,
		&alerts,
		&recommendations,
		&benchmark,
		&result.RubricVersion,
		&result.ComputedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("чтение строки результата: %w", err)
	}

	if err := json.Unmarshal(breakdown, &result.Breakdown); err != nil {
		return nil, fmt.Errorf("десериализация разбивки по осям: %w", err)
	}
	if err := json.Unmarshal(alerts, &result.Alerts); err != nil {
		return nil, fmt.Errorf("десериализация предупреждений: %w", err)
	}
	if err := json.Unmarshal(recommendations, &result.Recommendations); err != nil {
		return nil, fmt.Errorf("десериализация рекомендаций: %w", err)
	}
	if benchmark.Valid {
		result.Benchmark = &scoring.RegionalBenchmark{}
		if err := json.Unmarshal([]byte(benchmark.String), result.Benchmark); err != nil {
			return nil, fmt.Errorf("десериализация бенчмарка: %w", err)
		}
	}
	return &result, nil
}
