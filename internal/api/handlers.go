package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/recommend"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/session"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/database"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/network"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
	maxResults         = 100
)

// -------------------- Respuestas --------------------

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type searchResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
}

type recommendResponse struct {
	RequestID    string                     `json:"request_id"`
	Query        string                     `json:"query"`
	Found        bool                       `json:"found"`
	Node         string                     `json:"node"`
	LatencyMS    int64                      `json:"latency_ms"`
	Results      []recommend.Recommendation `json:"results"`
	Explanations []recommend.Explanation    `json:"explanations,omitempty"`
}

type graphStatsResponse struct {
	Nodes    map[string]int `json:"nodes"`
	Edges    int            `json:"edges"`
	Records  int            `json:"records"`
	Titles   int            `json:"titles"`
	Skipped  int            `json:"skipped"`
	LoadedAt time.Time      `json:"loaded_at"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	respondJSON(w, status, body)
}

// -------------------- Handlers --------------------

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.sessions.Current()
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "loading"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"loaded_at": snap.LoadedAt,
		"nodes":     len(s.opts.Nodes),
	})
}

// GET /api/v1/titles/search?q=&limit=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "MISSING_QUERY", "q is required")
		return
	}
	limit, ok := intParam(r, "limit", defaultSearchLimit)
	if !ok || limit < 1 {
		respondError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
		return
	}
	limit = min(limit, maxSearchLimit)

	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	results := snap.Index.Search(q, limit)
	if results == nil {
		results = []string{}
	}
	respondJSON(w, http.StatusOK, searchResponse{Query: q, Results: results})
}

// GET /api/v1/recommend/{title}?n=
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	s.serveRecommendation(w, r, false)
}

// GET /api/v1/explain/{title}?n=
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	s.serveRecommendation(w, r, true)
}

func (s *Server) serveRecommendation(w http.ResponseWriter, r *http.Request, explain bool) {
	title := pathParam(r, "title")
	if title == "" {
		respondError(w, http.StatusBadRequest, "MISSING_TITLE", "title is required")
		return
	}
	n, ok := intParam(r, "n", 0)
	if !ok || n < 0 || n > maxResults {
		respondError(w, http.StatusBadRequest, "INVALID_N", "n must be an integer between 0 and 100")
		return
	}

	reqID := RequestIDFromContext(r.Context())
	start := time.Now()
	resp, err := s.query(r.Context(), network.RecommendRequest{
		RequestID: reqID,
		Title:     title,
		N:         n,
		Explain:   explain,
	})
	if errors.Is(err, session.ErrNoSnapshot) {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "graph is still loading")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", reqID).Str("title", title).Msg("recommendation failed")
		respondError(w, http.StatusInternalServerError, "RECOMMEND_FAILED", "recommendation failed")
		return
	}
	latency := time.Since(start).Milliseconds()

	out := recommendResponse{
		RequestID: reqID,
		Query:     title,
		Found:     resp.Resolved,
		Node:      resp.Node,
		LatencyMS: latency,
		Results:   make([]recommend.Recommendation, 0, len(resp.Items)),
	}
	for _, it := range resp.Items {
		out.Results = append(out.Results, recommend.Recommendation{Label: it.Label, Score: it.Score})
	}
	if explain {
		out.Explanations = fromExplainItems(resp.Explanations)
	}

	s.logQuery(database.LogDocument{
		RequestID:     reqID,
		Query:         title,
		Resolved:      resp.Resolved,
		Results:       len(resp.Items),
		Node:          resp.Node,
		LatencyMS:     latency,
		TimestampUnix: time.Now().Unix(),
	})
	respondJSON(w, http.StatusOK, out)
}

// GET /api/v1/graph/stats
func (s *Server) handleGraphStats(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, statsOf(snap))
}

// POST /api/v1/reload
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sessions.Reload(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RELOAD_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, statsOf(snap))
}

// -------------------- Utilidades --------------------

func (s *Server) snapshot(w http.ResponseWriter) (*session.Snapshot, bool) {
	snap, err := s.sessions.Current()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "graph is still loading")
		return nil, false
	}
	return snap, true
}

func statsOf(snap *session.Snapshot) graphStatsResponse {
	nodes := make(map[string]int)
	for _, t := range []graph.NodeType{graph.TypeTitle, graph.TypeCountry, graph.TypeGenre, graph.TypePerson} {
		nodes[t.String()] = len(snap.Graph.NodesOfType(t))
	}
	return graphStatsResponse{
		Nodes:    nodes,
		Edges:    snap.Graph.NumEdges(),
		Records:  snap.Stats.Records,
		Titles:   snap.Stats.Titles,
		Skipped:  snap.Stats.Skipped,
		LoadedAt: snap.LoadedAt,
	}
}

// pathParam returns the decoded route parameter. chi hands back the escaped
// form when the request path needed escaping.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// intParam parses a query integer; absent means def.
func intParam(r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func fromExplainItems(items []network.ExplainItem) []recommend.Explanation {
	out := make([]recommend.Explanation, len(items))
	for i, x := range items {
		out[i] = recommend.Explanation{
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
