package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/config"
	"github.com/cmcs-dev/claim-workflow/internal/document"
	"github.com/cmcs-dev/claim-workflow/internal/export"
	"github.com/cmcs-dev/claim-workflow/internal/handler"
	"github.com/cmcs-dev/claim-workflow/internal/repository"
	"github.com/cmcs-dev/claim-workflow/internal/storage"
	"github.com/cmcs-dev/claim-workflow/internal/workflow"
	"github.com/cmcs-dev/claim-workflow/pkg/database"
	"github.com/cmcs-dev/claim-workflow/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting claim workflow service",
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	claimRepo := repository.NewClaimRepository(db.DB, logger)
	approvalRepo := repository.NewApprovalRepository(db.DB, logger)
	documentRepo := repository.NewDocumentRepository(db.DB, logger)

	engine := workflow.NewEngine(logger)
	gateway := workflow.NewGateway(db, claimRepo, approvalRepo, logger)

	store, err := storage.NewLocalFileStorage(cfg.Storage.DocumentDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize document storage", zap.Error(err))
	}
	inspector := document.NewInspector(logger)
	report := export.NewPaymentReport(claimRepo, logger)

	router := handler.NewRouter(
		handler.NewClaimHandler(engine, gateway, claimRepo, approvalRepo, logger),
		handler.NewDocumentHandler(documentRepo, claimRepo, store, inspector, cfg.Storage.MaxFileSize, logger),
		handler.NewReportHandler(report, logger),
		logger,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()
	logger.Info("Server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
