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

	"github.com/rs/zerolog/log"

	"marketplace-backend/pkg/container"
)

func Serve() {
	// 1. Build the dependency graph
	startCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	appContainer, err := container.NewContainer(startCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer appContainer.Cleanup()

	// 2. Router
	router := SetupRouter(appContainer)

	// 3. HTTP server
	port := appContainer.Config.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().
			Str("port", port).
			Str("environment", appContainer.Config.App.Environment).
			Msg("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// 4. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
