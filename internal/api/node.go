package api

import (
	"context"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/recommend"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/session"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/network"
)

// Answer runs one request against a snapshot. The gateway uses it for local
// queries and the TCP node for remote ones, so both return the same shape.
func Answer(snap *session.Snapshot, req network.RecommendRequest, node string) network.RecommendResponse {
	resp := network.RecommendResponse{
		RequestID: req.RequestID,
		Node:      node,
		Items:     []network.Item{},
	}
	if _, ok := snap.Engine.Resolve(req.Title); !ok {
		return resp
	}
	resp.Resolved = true

	expl, err := snap.Engine.Explain(req.Title, req.N)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	for _, x := range expl {
		resp.Items = append(resp.Items, network.Item{Label: x.Label, Score: x.Score})
	}
	if req.Explain {
		resp.Explanations = toExplainItems(expl)
	}
	return resp
}

// NodeHandler serves network requests from the manager's live snapshot.
func NodeHandler(sessions *session.Manager, node string) network.Handler {
	return func(_ context.Context, req network.RecommendRequest) network.RecommendResponse {
		snap, err := sessions.Current()
		if err != nil {
			return network.RecommendResponse{RequestID: req.RequestID, Node: node, Error: err.Error()}
		}
		return Answer(snap, req, node)
	}
}

func toExplainItems(expl []recommend.Explanation) []network.ExplainItem {
	out := make([]network.ExplainItem, len(expl))
	for i, x := range expl {
		out[i] = network.ExplainItem{
			Label:       x.Label,
			Score:       x.Score,
			Adamic:      x.Adamic,
			Jaccard:     x.Jaccard,
			Text:        x.Text,
			TextApplied: x.TextApplied,
			Gated:       x.Gated,
			Boosted:     x.Boosted,
			Shared:      x.Shared,
		}
	}
	return out
}
