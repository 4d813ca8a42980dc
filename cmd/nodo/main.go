package main

import (
	"context"
	"flag"
	"net"
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
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/network"
)

func main() {
	configPath := flag.String("config", "", "path to grafo.yaml")
	flag.Parse()

	log := logging.Component("nodo")
	// PORT is honoured through the config layer so several nodes can share
	// one config file.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	logging.Init(cfg.Logging)

	name, _ := os.Hostname()
	if name == "" {
		name = "nodo"
	}
	name += ":" + cfg.Node.Port
	log = logging.Component("nodo").With().Str("node", name).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var titles catalog.TitleSource
	if cfg.Dataset.Source == "mongo" {
		store, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to MongoDB")
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(closeCtx)
		}()
		titles = store
	}

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

	addr := ":" + cfg.Node.Port
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("listen")
	}
	log.Info().Str("addr", addr).Msg("recommendation node listening")

	onErr := func(err error) {
		log.Warn().Err(err).Msg("connection failed")
	}
	if err := network.Serve(ctx, ln, api.NodeHandler(sessions, name), cfg.Node.ConnTimeout, onErr); err != nil {
		log.Error().Err(err).Msg("serve")
	}
	log.Info().Msg("node stopped")
}
