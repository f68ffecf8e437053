package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhukovvlad/devis-go/cmd/internal/api_models"
)

// QualityRunHandler обрабатывает POST /internal/worker/quality-run.
// Принимает выборку исторических смет и возвращает агрегированный
// отчёт о качестве рубрики. Запрос долгий: отмена клиентом
// останавливает прогон между сметами.
func (s *Server) QualityRunHandler(c *gin.Context) {
	handlerLogger := s.logger.WithField("handler", "QualityRunHandler")

	var req api_models.QualityRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Errorf("Ошибка парсинга JSON: %v", err)
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("некорректный JSON: %w", err)))
		return
	}

	handlerLogger.Infof("Запрос на прогон качества: %d смет (рубрика %q)", len(req.Samples), req.RubricVersion)

	runner := s.qualityService
	if req.RubricVersion != "" {
		engine, err := s.scoreService.EngineFor(req.RubricVersion)
		if err != nil {
			c.JSON(statusForError(err), errorResponse(err))
			return
		}
		runner = runner.WithEngine(engine)
	}

	report, err := runner.Run(c.Request.Context(), req.Samples)
	if err != nil {
		handlerLogger.Errorf("Прогон качества не выполнен: %v", err)
		c.JSON(statusForError(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, report)
}
