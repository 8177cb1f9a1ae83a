package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agripredict/config"
	"agripredict/database"
	"agripredict/pkg/engine"
	"agripredict/pkg/logging"
	"agripredict/pkg/middleware"
	"agripredict/pkg/predictor"
	"agripredict/pkg/reference"
	"agripredict/router"

	// Prediction
	predCtrlImp "agripredict/pkg/prediction/controllerImp"
	"agripredict/pkg/prediction/repository"
	predRepoImp "agripredict/pkg/prediction/repositoryImp"
	predSvcImp "agripredict/pkg/prediction/serviceImp"

	// Reference, session, health
	healthCtrlImp "agripredict/pkg/health/controllerImp"
	refCtrlImp "agripredict/pkg/reference/controllerImp"
	sessCtrlImp "agripredict/pkg/session/controllerImp"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// 1) Config + logger
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	// 2) Reference tables + engine
	ref, err := reference.Load(cfg.ReferencePath)
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	mode, err := engine.ParseCategoryMode(cfg.YieldCategoryMode)
	if err != nil {
		return fmt.Errorf("YIELD_CATEGORY_MODE: %w", err)
	}
	eng := engine.New(ref, engine.WithCategoryMode(mode))

	// 3) Yield model
	model, err := predictor.FromOptions(cfg.PredictorOptions())
	if err != nil {
		return fmt.Errorf("predictor: %w", err)
	}

	// 4) History (optional)
	var (
		db   *gorm.DB
		repo repository.PredictionRepository
	)
	if cfg.HistoryEnabled {
		if db, err = database.OpenSQLite(cfg.DBPath); err != nil {
			return err
		}
		repo = predRepoImp.New(db)
	}

	logger.Info("starting",
		zap.String("reference", describe(cfg.ReferencePath)),
		zap.String("predictor", model.Name()),
		zap.String("yield_category_mode", string(mode)),
		zap.Bool("history", cfg.HistoryEnabled))

	// 5) Services + controllers
	svc := predSvcImp.NewPredictionService(eng, ref, model, repo, logger.Named("prediction"))
	pCtrl := predCtrlImp.New(svc, logger.Named("api"))
	rCtrl := refCtrlImp.NewReferenceCtrl(ref, mode)
	sCtrl := sessCtrlImp.NewSessionController()
	hCtrl := healthCtrlImp.NewHealthCtrl(db, model, ref)

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Server(logger.Named("http"))...)
	r := router.New(e, pCtrl, rCtrl, sCtrl, hCtrl)

	// 7) Start, stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", ":"+cfg.Port))
		errc <- r.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.Shutdown(shutdownCtx)
}

func describe(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
