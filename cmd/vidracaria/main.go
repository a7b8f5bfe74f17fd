package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/catalog"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/client"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/config"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/db"
	vidracariaHttp "github.com/Maffezzoli/ProjetoVidracaria/internal/handler/http"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/order"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/report"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.App.LogLevel).Msg("Unknown log level, falling back to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.With().Str("service", cfg.App.Name).Logger()

	log.Info().Msg("Starting vidracaria service...")

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connectCancel()

	postgres, err := db.New(connectCtx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.ApplyMigrations(cfg.Postgres); err != nil {
		postgres.Close()
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	clock := order.SystemClock{}

	productRepository := catalog.NewRepository(postgres.SQLX)
	productSvc := catalog.NewService(productRepository, clock)

	clientRepository := client.NewRepository(postgres.Pool)
	clientSvc := client.NewService(clientRepository, productSvc, clock)

	reportSvc := report.NewService(clientSvc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	vidracariaHttp.NewHealthHandler(postgres.Pool).RegisterRoutes(router)
	vidracariaHttp.NewClientHandler(clientSvc).RegisterRoutes(router)
	vidracariaHttp.NewOrderHandler(clientSvc).RegisterRoutes(router)
	vidracariaHttp.NewProductHandler(productSvc).RegisterRoutes(router)
	vidracariaHttp.NewReportHandler(reportSvc).RegisterRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.App.Port).Msg("Could not listen")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	postgres.Close()

	log.Info().Msg("Vidracaria service stopped gracefully.")
}
