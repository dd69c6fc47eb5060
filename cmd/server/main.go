package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/config"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
	"github.com/dlamayo/boardinghouse/internal/repository/localstore"
	"github.com/dlamayo/boardinghouse/internal/repository/mongodb"
	"github.com/dlamayo/boardinghouse/internal/repository/sheets"
	"github.com/dlamayo/boardinghouse/internal/scheduler"
	"github.com/dlamayo/boardinghouse/internal/server/handlers"
	"github.com/dlamayo/boardinghouse/internal/server/router"
	authsvc "github.com/dlamayo/boardinghouse/internal/service/auth"
	billingsvc "github.com/dlamayo/boardinghouse/internal/service/billing"
	lifecyclesvc "github.com/dlamayo/boardinghouse/internal/service/lifecycle"
	occupancysvc "github.com/dlamayo/boardinghouse/internal/service/occupancy"
	"github.com/dlamayo/boardinghouse/pkg/clients/notify"
	"github.com/dlamayo/boardinghouse/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store bedstore.Store
	if cfg.Mongo.URI != "" {
		store, err = mongodb.Open(context.Background(), cfg.Mongo.URI, cfg.Mongo.DBName, baseLogger.Named("repo.mongo"))
		if err != nil {
			baseLogger.Fatal("failed to init mongodb bed store", zap.Error(err))
		}
	} else {
		baseLogger.Info("no MONGODB_URI configured, using local file store", zap.String("path", cfg.Local.Path))
		store, err = localstore.Open(cfg.Local.Path, baseLogger.Named("repo.local"))
		if err != nil {
			baseLogger.Fatal("failed to init local bed store", zap.Error(err))
		}
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close bed store", zap.Error(err))
		}
	}()

	var sheetsRepo sheets.Repository
	if cfg.SheetsEnabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("google sheets not configured, sheet endpoints disabled")
	}

	authService := authsvc.NewService(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.SessionSecret, baseLogger.Named("svc.auth"))
	if !authService.Enabled() {
		baseLogger.Warn("admin credentials missing, mutation endpoints will reject every request")
	}

	occupancyService := occupancysvc.NewService(store, baseLogger.Named("svc.occupancy"))
	billingService := billingsvc.NewService(store, baseLogger.Named("svc.billing"))
	lifecycleService := lifecyclesvc.NewService(store, baseLogger.Named("svc.lifecycle"))

	bedHandler := handlers.NewBedHandler(store, occupancyService, billingService, lifecycleService, baseLogger.Named("handlers.beds"))
	adminHandler := handlers.NewAdminHandler(authService, baseLogger.Named("handlers.admin"))
	sheetHandler := handlers.NewSheetHandler(sheetsRepo, baseLogger.Named("handlers.sheets"))
	engine := router.New(bedHandler, adminHandler, sheetHandler, authService, baseLogger.Named("router"))

	var notifier notify.Client
	if cfg.Alerts.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.Alerts.WebhookURL)
		baseLogger.Info("overdue alert webhook enabled")
	}
	sched := scheduler.NewScheduler(cfg.Alerts, store, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
