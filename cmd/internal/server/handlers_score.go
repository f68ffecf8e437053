package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// ScoreQuoteHandler обрабатывает POST /internal/worker/score.
// Анализатор документов присылает извлечённую смету вместе с контекстом
// и обогащением; в ответ уходит свежий ScoreResult.
func (s *Server) ScoreQuoteHandler(c *gin.Context) {
	handlerLogger := s.logger.WithField("handler", "ScoreQuoteHandler")

	var req api_models.ScoreQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Errorf("Ошибка парсинга JSON: %v", err)
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("некорректный JSON: %w", err)))
		return
	}

	handlerLogger.Infof("Запрос на оценку сметы %s (рубрика %q)", req.Quote.QuoteID, req.RubricVersion)

	outcome, err := s.scoreService.ScoreQuote(c.Request.Context(), &req)
	if err != nil {
		handlerLogger.Errorf("Не удалось оценить смету %s: %v", req.Quote.QuoteID, err)
		c.JSON(statusForError(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// ScoreQuoteByIDHandler обрабатывает POST /api/v1/quotes/:quote_id/score.
// Тот же контракт, но идентификатор сметы берётся из пути и обязан
// совпадать с телом (или отсутствовать в нём).
func (s *Server) ScoreQuoteByIDHandler(c *gin.Context) {
	handlerLogger := s.logger.WithField("handler", "ScoreQuoteByIDHandler")
	quoteID := c.Param("quote_id")

	var req api_models.ScoreQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Errorf("Ошибка парсинга JSON: %v", err)
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("некорректный JSON: %w", err)))
		return
	}

	if req.Quote.QuoteID == "" {
		req.Quote.QuoteID = quoteID
	}
	// Версию рубрики можно передать и query-параметром; тело имеет приоритет.
	if req.RubricVersion == "" {
		req.RubricVersion = c.Query("rubric")
	}
	if req.Quote.QuoteID != quoteID {
		c.JSON(http.StatusBadRequest, errorResponse(
			fmt.Errorf("quote_id в пути (%s) не совпадает с телом (%s)", quoteID, req.Quote.QuoteID)))
		return
	}

	outcome, err := s.scoreService.ScoreQuote(c.Request.Context(), &req)
	if err != nil {
		handlerLogger.Errorf("Не удалось оценить смету %s: %v", quoteID, err)
		c.JSON(statusForError(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// listScoresHandler обрабатывает GET /api/v1/quotes/:quote_id/scores —
// полная история оценок сметы для аудита.
func (s *Server) listScoresHandler(c *gin.Context) {
	quoteID := c.Param("quote_id")

	results, err := s.scoreService.History(c.Request.Context(), quoteID)
	if err != nil {
		s.logger.Errorf("История оценок сметы %s недоступна: %v", quoteID, err)
		c.JSON(statusForError(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote_id": quoteID,
		"results":  results,
	})
}

// latestScoreHandler обрабатывает GET /api/v1/quotes/:quote_id/scores/latest —
// актуальная оценка для отображения.
func (s *Server) latestScoreHandler(c *gin.Context) {
	quoteID := c.Param("quote_id")

	result, err := s.scoreService.Latest(c.Request.Context(), quoteID)
	if err != nil {
		c.JSON(statusForError(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// listRubricsHandler обрабатывает GET /api/v1/rubrics.
func (s *Server) listRubricsHandler(c *gin.Context) {
	defaultVersion, versions := s.scoreService.RubricVersions()
	c.JSON(http.StatusOK, gin.H{
		"default":  defaultVersion,
		"versions": versions,
	})
}
