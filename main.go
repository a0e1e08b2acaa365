package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/config"
	v1 "github.com/goals-wallet/backend/internal/controllers/v1"
	"github.com/goals-wallet/backend/internal/events"
	"github.com/goals-wallet/backend/internal/ledger"
	"github.com/goals-wallet/backend/internal/router"
	"github.com/goals-wallet/backend/internal/scheduler"
	"github.com/goals-wallet/backend/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Store")
	}
	defer gateway.Close()

	m, err := ledger.New(ctx, gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("Ledger")
	}

	publisher, err := newPublisher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Events")
	}
	defer publisher.Close()
	unsubscribe := events.Forward(m, publisher)
	defer unsubscribe()

	archiver, err := scheduler.New(cfg.ArchiveSchedule, m, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("Scheduler")
	}

	url, _ := cfg.BaseURL()
	opts := router.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		EnablePprof:      cfg.EnablePprof,
	}

	r, teardown, err := router.Config(url, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Router")
	}
	defer teardown()

	if err := router.AttachRoutes(r.Group(url.Path), v1.Controller{Ledger: m}, gateway, opts); err != nil {
		log.Fatal().Err(err).Msg("Router")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("Server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if archiver != nil {
		g.Go(func() error {
			return archiver.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server")
	}
}

// openStore connects to the configured backend.
func openStore(ctx context.Context, cfg config.Config) (store.Gateway, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		return store.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	case config.BackendMemory:
		log.Warn().Msg("using the memory store, all data is lost on shutdown")
		return store.NewMemory(), nil
	}

	// Create data directory
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), os.ModePerm); err != nil {
		return nil, err
	}

	return store.OpenSQLite(cfg.SQLitePath)
}

// newPublisher returns the AMQP publisher if a broker is configured.
func newPublisher(cfg config.Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return events.LogPublisher{}, nil
	}

	return events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
}
