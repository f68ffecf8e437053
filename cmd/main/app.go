package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/zhukovvlad/devis-go/cmd/internal/config"
	"github.com/zhukovvlad/devis-go/cmd/internal/server"
	"github.com/zhukovvlad/devis-go/cmd/internal/services"
	"github.com/zhukovvlad/devis-go/cmd/internal/services/quality"
	"github.com/zhukovvlad/devis-go/cmd/internal/storage"
	"github.com/zhukovvlad/devis-go/cmd/pkg/logging"

	_ "github.com/lib/pq"
)

const dbDriver = "postgres"

func main() {
	logger := logging.GetLogger()
	logger.Info("Starting Devis Scoring API...")

	if err := godotenv.Load(); err != nil {
		logger.Warnf("error loading .env file: %v", err)
	}

	cfg := config.GetConfig()

	conn, err := sql.Open(dbDriver, cfg.Storage.DSN)
	if err != nil {
		logger.Fatalf("error connecting to database: %v", err)
	}
	defer conn.Close()

	if err = conn.Ping(); err != nil {
		logger.Fatalf("error pinging database: %v", err)
	}

	logger.Info("Database connection established")

	resultStore := storage.NewResultStore(conn, logger)
	if err := resultStore.EnsureSchema(context.Background()); err != nil {
		logger.Fatalf("error preparing schema: %v", err)
	}

	// Оба движка (обе рубрики) собираются и валидируются здесь:
	// дефект конфигурации рубрики валит приложение до приёма трафика.
	scoreService, err := services.NewScoreService(cfg, resultStore, logger)
	if err != nil {
		logger.Fatalf("error building score service: %v", err)
	}

	defaultEngine, err := scoreService.EngineFor("")
	if err != nil {
		logger.Fatalf("error resolving default rubric: %v", err)
	}
	qualityService := quality.NewRunner(defaultEngine, logger, cfg.Quality.Concurrency)

	srv := server.NewServer(logger, scoreService, qualityService, cfg)

	serverAddress := fmt.Sprintf("%s:%s", cfg.Listen.BindIP, cfg.Listen.Port)
	logger.Infof("Starting server on %s", serverAddress)

	if err := srv.Start(serverAddress); err != nil {
		logger.Fatalf("error starting server: %v", err)
	}
}
