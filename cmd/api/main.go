package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/api"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/config"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/logging"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/session"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/database"
)

func main() {
	configPath := flag.String("config", "", "path to grafo.yaml")
	flag.Parse()

	log := logging.Component("api")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	logging.Init(cfg.Logging)
	log = logging.Component("api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------------------------------------
	// Conexión a MongoDB
	// --------------------------------------------------

	var (
		store  *database.Store
		titles catalog.TitleSource
		logs   api.LogSink
	)
	if cfg.Dataset.Source == "mongo" || cfg.Mongo.LogQueries {
		log.Info().Str("uri", cfg.Mongo.URI).Msg("connecting to MongoDB")
		store, err = database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to MongoDB")
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(closeCtx)
		}()
		titles = store
		if cfg.Mongo.LogQueries {
			logs = store
		}
	}

	// --------------------------------------------------
	// Grafo
	// --------------------------------------------------

	sessions, err := session.FromConfig(cfg, titles, logging.Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("creating session")
	}
	if _, err := sessions.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("building graph")
	}
	if cfg.Dataset.Watch && cfg.Dataset.Source == "csv" {
		go func() {
			if err := sessions.Watch(ctx, cfg.Dataset.Path, cfg.Dataset.WatchDebounce); err != nil {
				log.Error().Err(err).Msg("dataset watcher stopped")
			}
		}()
	}

	// --------------------------------------------------
	// Servidor HTTP
	// --------------------------------------------------

	srv := api.NewServer(sessions, api.Options{
		Nodes:           cfg.Server.Nodes,
		NodeTimeout:     cfg.Server.NodeTimeout,
		Logs:            logs,
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: cfg.Server.RateLimitWindow,
		Logger:          logging.Logger(),
	})
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Strs("nodes", cfg.Server.Nodes).Msg("API listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	srv.Wait()
}
