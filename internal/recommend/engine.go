// Package recommend ranks titles similar to a given one over the entity graph.
//
// For a source title the engine collects every title two hops away (sharing a
// country, genre or person), scores each with Adamic–Adar, weighted Jaccard and
// name similarity, fuses the three and returns the best N. The graph must be
// frozen: the engine never locks, so one Engine can serve many goroutines.
package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/metrics"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/similarity"
)

// ErrGraphNotFrozen is returned by NewEngine for a graph still open to writes.
var ErrGraphNotFrozen = errors.New("graph must be frozen before serving recommendations")

// Recommendation is one ranked result.
type Recommendation struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Explanation is a Recommendation with the signals that produced it.
type Explanation struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`

	Adamic  float64 `json:"adamic_adar"`
	Jaccard float64 `json:"jaccard"`
	// Text is the raw name ratio; TextApplied is what entered the fusion.
	Text        float64  `json:"text"`
	TextApplied float64  `json:"text_applied"`
	Gated       bool     `json:"gated"`
	Boosted     bool     `json:"boosted"`
	Shared      []string `json:"shared"`
}

type cacheKey struct {
	label string
	n     int
}

type Engine struct {
	g      *graph.Graph
	cfg    Config
	logger zerolog.Logger
	cache  *lru.Cache[cacheKey, []Explanation]
}

func NewEngine(g *graph.Graph, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if g == nil || !g.Frozen() {
		return nil, ErrGraphNotFrozen
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		g:      g,
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[cacheKey, []Explanation](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		e.cache = cache
	}
	return e, nil
}

func (e *Engine) Graph() *graph.Graph { return e.g }
func (e *Engine) Config() Config      { return e.cfg }

// ---------------------------------------------------------
// API pública
// ---------------------------------------------------------

// Recommend returns up to n titles similar to label, best first. n <= 0 uses
// Config.TopN. A label that is not a title yields an empty slice and no error.
func (e *Engine) Recommend(label string, n int) ([]Recommendation, error) {
	expl, err := e.Explain(label, n)
	if err != nil {
		return nil, err
	}
	out := make([]Recommendation, len(expl))
	for i, x := range expl {
		out[i] = Recommendation{Label: x.Label, Score: x.Score}
	}
	return out, nil
}

// Explain is Recommend with the per-signal breakdown of every result.
func (e *Engine) Explain(label string, n int) ([]Explanation, error) {
	if n <= 0 {
		n = e.cfg.TopN
	}
	key := cacheKey{label: label, n: n}
	if e.cache != nil {
		if hit, ok := e.cache.Get(key); ok {
			metrics.RecommendQueriesTotal.WithLabelValues("cached").Inc()
			return cloneExplanations(hit), nil
		}
	}

	start := time.Now()
	out, err := e.rank(label, n)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RecommendQueriesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if e.cache != nil {
		e.cache.Add(key, cloneExplanations(out))
	}
	return out, nil
}

// Resolve reports whether label names a title node. Keys are labels, so the
// first title in insertion order with that label is the only one.
func (e *Engine) Resolve(label string) (string, bool) {
	n, ok := e.g.Node(label)
	if !ok || n.Type() != graph.TypeTitle {
		return "", false
	}
	return n.Key(), true
}

// Candidates lists the titles two hops away from label in discovery order.
func (e *Engine) Candidates(label string) []string {
	src, ok := e.Resolve(label)
	if !ok {
		return nil
	}
	return e.candidates(src)
}

// ---------------------------------------------------------
// Pipeline
// ---------------------------------------------------------

func (e *Engine) candidates(src string) []string {
	attrs, _ := e.g.Neighbors(src)

	seen := make(map[string]struct{})
	var out []string
	for _, a := range attrs {
		titles, _ := e.g.Neighbors(a)
		for _, c := range titles {
			if c == src {
				continue
			}
			if n, _ := e.g.Node(c); n.Type() != graph.TypeTitle {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func (e *Engine) rank(label string, n int) ([]Explanation, error) {
	src, ok := e.Resolve(label)
	if !ok {
		metrics.RecommendQueriesTotal.WithLabelValues("not_found").Inc()
		e.logger.Debug().Str("title", label).Msg("title not found")
		return []Explanation{}, nil
	}

	cands := e.candidates(src)
	metrics.CandidatesPerQuery.Observe(float64(len(cands)))

	type scored struct {
		x     Explanation
		final float64
	}
	all := make([]scored, 0, len(cands))
	for _, c := range cands {
		x, final, err := e.score(src, c)
		if err != nil {
			return nil, fmt.Errorf("score %q against %q: %w", c, src, err)
		}
		all = append(all, scored{x: x, final: final})
	}

	// Stable: ties keep discovery order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].final > all[j].final
	})
	if len(all) > n {
		all = all[:n]
	}

	out := make([]Explanation, len(all))
	for i, s := range all {
		s.x.Score = round(s.final, e.cfg.Precision)
		out[i] = s.x
	}

	metrics.RecommendQueriesTotal.WithLabelValues("found").Inc()
	e.logger.Debug().
		Str("title", src).
		Int("candidates", len(cands)).
		Int("returned", len(out)).
		Msg("recommendations ranked")
	return out, nil
}

func (e *Engine) score(src, cand string) (Explanation, float64, error) {
	aa, err := similarity.AdamicAdar(e.g, src, cand, e.cfg.Rarity)
	if err != nil {
		return Explanation{}, 0, err
	}
	jac, err := similarity.WeightedJaccard(e.g, src, cand, e.cfg.TypeWeights)
	if err != nil {
		return Explanation{}, 0, err
	}
	shared, err := e.g.CommonNeighbors(src, cand)
	if err != nil {
		return Explanation{}, 0, err
	}

	text := similarity.TextSimilarity(src, cand)
	applied := text
	gated, boosted := false, false
	if jac < e.cfg.StructuralThreshold {
		applied = 0
		gated = true
	} else if applied > e.cfg.FranchiseThreshold {
		applied *= e.cfg.FranchiseBoost
		boosted = true
	}

	final := e.cfg.Alpha*aa +
		e.cfg.Beta*(jac*e.cfg.JaccardScale) +
		e.cfg.Gamma*(applied*e.cfg.TextScale)

	return Explanation{
		Label:       cand,
		Adamic:      aa,
		Jaccard:     jac,
		Text:        text,
		TextApplied: applied,
		Gated:       gated,
		Boosted:     boosted,
		Shared:      shared,
	}, final, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func cloneExplanations(in []Explanation) []Explanation {
	out := make([]Explanation, len(in))
	for i, x := range in {
		x.Shared = append([]string(nil), x.Shared...)
		out[i] = x
	}
	return out
}
