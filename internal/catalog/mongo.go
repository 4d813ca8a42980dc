package catalog

import (
	"context"
	"fmt"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/database"
)

// TitleSource is the read side of the catalog store.
type TitleSource interface {
	FindTitles(ctx context.Context) ([]database.TitleDocument, error)
}

// TitleSink is the write side of the catalog store.
type TitleSink interface {
	ReplaceTitles(ctx context.Context, docs []database.TitleDocument) (int, error)
}

func ToDocuments(recs []Record) []database.TitleDocument {
	docs := make([]database.TitleDocument, len(recs))
	for i, r := range recs {
		docs[i] = database.TitleDocument{
			Seq:         i,
			ShowID:      r.ShowID,
			Kind:        r.Kind,
			Title:       r.Title,
			ReleaseYear: r.ReleaseYear,
			Countries:   r.Countries,
			Genres:      r.Genres,
			Directors:   r.Directors,
			Cast:        r.Cast,
		}
	}
	return docs
}

// FromDocuments converts stored documents back to records, applying the same
// normalisation as the CSV loader. docs must already be sorted by Seq.
func FromDocuments(docs []database.TitleDocument) []Record {
	recs := make([]Record, len(docs))
	for i, d := range docs {
		title := d.Title
		if title == "" {
			title = UnknownTitle
		}
		recs[i] = Record{
			ShowID:      d.ShowID,
			Kind:        d.Kind,
			Title:       title,
			ReleaseYear: d.ReleaseYear,
			Countries:   clean(d.Countries),
			Genres:      clean(d.Genres),
			Directors:   clean(d.Directors),
			Cast:        clean(d.Cast),
		}
	}
	return recs
}

func clean(list []string) []string {
	var out []string
	for _, s := range list {
		out = append(out, SplitList(s)...)
	}
	return out
}

// LoadMongo reads the catalog from the store.
func LoadMongo(ctx context.Context, src TitleSource) ([]Record, error) {
	docs, err := src.FindTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from mongo: %w", err)
	}
	return FromDocuments(docs), nil
}

// ImportMongo replaces the stored catalog with recs.
func ImportMongo(ctx context.Context, dst TitleSink, recs []Record) (int, error) {
	n, err := dst.ReplaceTitles(ctx, ToDocuments(recs))
	if err != nil {
		return 0, fmt.Errorf("import catalog to mongo: %w", err)
	}
	return n, nil
}
