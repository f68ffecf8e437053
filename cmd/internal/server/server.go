package server

import (
	"errors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zhukovvlad/devis-go/cmd/internal/config"
	"github.com/zhukovvlad/devis-go/cmd/internal/services"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/apierrors"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/quality"
	"github.com/zhukovvlad/devis-go/cmd/pkg/logging"
)

type Server struct {
	router         *gin.Engine
	logger         *logging.Logger
	scoreService   *services.ScoreService
	qualityService *quality.Runner
	config         *config.Config
}

func NewServer(
	logger *logging.Logger,
	scoreService *services.ScoreService,
	qualityService *quality.Runner,
	cfg *config.Config,
) *Server {
	server := &Server{
		logger:         logger,
		scoreService:   scoreService,
		qualityService: qualityService,
		config:         cfg,
	}
	router := gin.Default()

	// Настройка CORS
	corsConfig := cors.DefaultConfig()
	if cfg.IsDebug != nil && *cfg.IsDebug {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	} else {
		if len(cfg.CORS.AllowedOrigins) > 0 {
			corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
		} else {
			// В production CORS origins должны быть явно настроены
			logger.Warn("CORS allowed_origins not configured in production - using restrictive default")
			corsConfig.AllowOrigins = []string{}
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	router.GET("/home", server.HomeHandler)
	router.GET("/api/stats", server.getStatsHandler)

	// --- INTERNAL (document-analyzer / enrichment workers) ---
	// Server-to-server группа: анализатор документов присылает сюда
	// извлечённые сметы вместе с обогащением. Только service-auth.
	// Rate limiting — defense-in-depth на случай компрометации API ключа.
	internal := router.Group("/internal/worker")
	internal.Use(ServiceBearerAuthMiddleware("document-analyzer", ""))
	internal.Use(ServiceRateLimitMiddleware(100, 200)) // 100 req/s, burst 200
	{
		// Оценка сметы по запросу воркера
		internal.POST("/score", server.ScoreQuoteHandler)

		// Пакетный прогон качества рубрики по историческим сметам
		internal.POST("/quality-run", server.QualityRunHandler)
	}

	// --- API V1 ---
	v1 := router.Group("/api/v1")
	{
		v1.POST("/quotes/:quote_id/score", server.ScoreQuoteByIDHandler)
		v1.GET("/quotes/:quote_id/scores", server.listScoresHandler)
		v1.GET("/quotes/:quote_id/scores/latest", server.latestScoreHandler)
		v1.GET("/rubrics", server.listRubricsHandler)
	}

	server.router = router
	return server
}

func (s *Server) Start(address string) error {
	return s.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

// statusForError отображает типизированные ошибки сервисов в HTTP-статусы.
func statusForError(err error) int {
	var validationErr *apierrors.ValidationError
	var notFoundErr *apierrors.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		return 400
	case errors.As(err, &notFoundErr):
		return 404
	default:
		return 500
	}
}
