package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"swapwatch/internal/bootstrap"
	infracfg "swapwatch/internal/infrastructure/config"
	"swapwatch/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, cleanup, err := bootstrap.InitAPIApp(ctx)
	if err != nil {
		logger.Error("bootstrap", zap.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	port := app.Config.Port
	if port == "" {
		port = infracfg.DefaultHTTPPort
	}
	addr := ":" + port
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Handler,
		ReadHeaderTimeout: infracfg.DefaultReadHeaderTimeout,
	}

	poolDone := make(chan struct{})
	go func() {
		defer close(poolDone)
		app.Worker.Start(ctx)
	}()

	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infracfg.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	<-poolDone
	logger.Info("server stopped")
}
