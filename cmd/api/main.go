package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"tcmbrates/internal/bootstrap"
	defaults "tcmbrates/internal/infrastructure/config"
	httpserver "tcmbrates/internal/infrastructure/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := bootstrap.ProvideLogger()
	defer func() { _ = logger.Sync() }()
	cfg := bootstrap.ProvideConfig()
	port := cfg.Port
	if port == "" {
		port = defaults.DefaultHTTPPort
	}
	addr := ":" + port

	svc, err := bootstrap.InitRatesService(cfg, logger)
	if err != nil {
		logger.Fatal("bootstrap rates service", zap.Error(err))
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaults.DefaultRequestTimeout
	}
	srv := httpserver.NewServer(svc, timeout)
	mux := httpserver.NewRouter(srv)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server started",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("provider", cfg.Provider),
			zap.String("search_mode", cfg.SearchMode))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), defaults.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
