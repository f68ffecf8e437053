package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/apierrors"
	"github.com/zhukovvlad/devis-go/cmd/internal/testutil"
)

// stubModel возвращает заранее заданные значения независимо от сметы.
type stubModel struct {
	score      float64
	confidence float64
}

func (m *stubModel) Version() string { return "stub-v0" }

func (m *stubModel) Predict(_ *api_models.ExtractedQuoteData, _ *ScoreResult) (float64, float64) {
	return m.score, m.confidence
}

func baseResult(score, confidence int) *ScoreResult {
	return &ScoreResult{
		ID:            "res-1",
		QuoteID:       "devis-ml",
		Score:         score,
		Grade:         "B",
		Confidence:    confidence,
		RubricVersion: RubricVersionLegacy,
	}
}

func TestNewAdjusterValidatesArguments(t *testing.T) {
	rubric := NewLegacyRubric()

	_, err := NewAdjuster(rubric, nil, 0.3)
	require.Error(t, err)
	var cfgErr *apierrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewAdjuster(rubric, &stubModel{}, 1.5)
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewAdjuster(rubric, &stubModel{}, -0.1)
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestAdjustBlendsWithoutMutatingBase(t *testing.T) {
	adjuster, err := NewAdjuster(NewLegacyRubric(), &stubModel{score: 800, confidence: 0.6}, 0.5)
	require.NoError(t, err)

	base := baseResult(600, 85)
	quote := testutil.CreateTestQuote("devis-ml")

	adjusted := adjuster.Adjust(&quote, base)

	// 600*0.5 + 800*0.5 = 700; доверие 85 * (0.5 + 0.5*0.6) = 68.
	assert.Equal(t, 700, adjusted.AdjustedScore)
	assert.Equal(t, "B", adjusted.AdjustedGrade)
	assert.Equal(t, 68, adjusted.Confidence)
	assert.Equal(t, "stub-v0", adjusted.ModelVersion)

	// Правиловый результат остаётся доступным и нетронутым.
	assert.Same(t, base, adjusted.Base)
	assert.Equal(t, 600, base.Score)
	assert.Equal(t, "B", base.Grade)
	assert.Equal(t, 85, base.Confidence)
}

func TestAdjustClampsPredictionToScale(t *testing.T) {
	adjuster, err := NewAdjuster(NewLegacyRubric(), &stubModel{score: 5000, confidence: 1}, 1)
	require.NoError(t, err)

	quote := testutil.CreateTestQuote("devis-ml")
	adjusted := adjuster.Adjust(&quote, baseResult(600, 85))

	assert.Equal(t, 1000, adjusted.AdjustedScore)
	assert.Equal(t, "A", adjusted.AdjustedGrade)
}

func TestAdjustConfidenceFloor(t *testing.T) {
	adjuster, err := NewAdjuster(NewLegacyRubric(), &stubModel{score: 600, confidence: 0}, 0.5)
	require.NoError(t, err)

	quote := testutil.CreateTestQuote("devis-ml")
	adjusted := adjuster.Adjust(&quote, baseResult(600, 50))

	assert.Equal(t, 50, adjusted.Confidence)
}

func TestAdjustZeroBlendKeepsRuleScore(t *testing.T) {
	adjuster, err := NewAdjuster(NewLegacyRubric(), &stubModel{score: 0, confidence: 1}, 0)
	require.NoError(t, err)

	quote := testutil.CreateTestQuote("devis-ml")
	adjusted := adjuster.Adjust(&quote, baseResult(640, 85))

	assert.Equal(t, 640, adjusted.AdjustedScore)
}

func TestLinearAdjustmentModelShiftsScore(t *testing.T) {
	adjuster, err := NewAdjuster(NewLegacyRubric(), &LinearAdjustmentModel{Shift: 0.1}, 1)
	require.NoError(t, err)

	quote := testutil.CreateTestQuote("devis-ml")
	adjusted := adjuster.Adjust(&quote, baseResult(600, 85))

	assert.Equal(t, 660, adjusted.AdjustedScore)
	assert.Equal(t, "linear-v1", adjusted.ModelVersion)
}
