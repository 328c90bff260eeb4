package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/training-calendar-api/api/handlers"
	"github.com/linesmerrill/training-calendar-api/config"
)

const shutdownTimeout = 15 * time.Second

func main() {
	a := handlers.App{}
	a.Config = *config.New()
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//initialize database, services and router
	if err := a.Initialize(ctx); err != nil {
		zap.S().Fatalw("failed to initialize", "error", err)
	}
	if err := a.Scheduler.Start(); err != nil {
		zap.S().Fatalw("failed to start reminder scheduler", "error", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", a.Config.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.S().Infow("training-calendar-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("http server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("http server shutdown", "error", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		zap.S().Errorw("failed to disconnect from database", "error", err)
	}
}
