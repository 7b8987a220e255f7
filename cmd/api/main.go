// Command api runs the StellarHost customer portal API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stellarhost/portal/internal/config"
	"github.com/stellarhost/portal/internal/database"
	"github.com/stellarhost/portal/internal/handler"
	"github.com/stellarhost/portal/internal/logger"
	"github.com/stellarhost/portal/internal/middleware"
	"github.com/stellarhost/portal/internal/repository"
	"github.com/stellarhost/portal/internal/router"
	"github.com/stellarhost/portal/internal/server"
	"github.com/stellarhost/portal/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// config.Load logs its own failures; this is unreachable in
		// practice but keeps the contract explicit.
		os.Exit(1)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		os.Exit(1)
	}

	log := logger.New(cfg, loggerService)

	if err := database.Migrate(context.Background(), log, cfg); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	mws := middleware.NewMiddlewares(srv, services)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.New(srv, mws, handlers))

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	loggerService.Shutdown(10 * time.Second)

	log.Info().Msg("server exited")
}
