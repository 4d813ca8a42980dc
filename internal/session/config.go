package session

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/config"
)

// FromConfig builds a manager for cfg. store is only read when the dataset
// source is mongo.
func FromConfig(cfg *config.Config, store catalog.TitleSource, logger zerolog.Logger) (*Manager, error) {
	var src Source
	switch cfg.Dataset.Source {
	case "mongo":
		if store == nil {
			return nil, errors.New("session: mongo source selected without a store")
		}
		src = MongoSource(store)
	default:
		src = CSVSource(cfg.Dataset.Path, cfg.Dataset.Workers)
	}
	return New(Options{
		Source:    src,
		Full:      cfg.FullOptions(),
		Recommend: cfg.Recommend,
		Logger:    logger,
	})
}
