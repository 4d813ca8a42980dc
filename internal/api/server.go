// Package api is the HTTP gateway in front of the recommendation graph.
//
// Queries are answered from the local session or, when nodes are configured,
// sent round-robin to TCP recommendation nodes. A failed node call falls back
// to the local session so a dead node never fails a request.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/metrics"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/session"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/database"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/network"
)

// LocalNode names the gateway itself in responses and logs.
const LocalNode = "local"

// LogSink stores query logs. *database.Store satisfies it.
type LogSink interface {
	InsertLog(ctx context.Context, doc database.LogDocument) error
}

// Caller sends one request to a node. network.Call in production.
type Caller func(ctx context.Context, addr string, req network.RecommendRequest) (*network.RecommendResponse, error)

type Options struct {
	Nodes       []string
	NodeTimeout time.Duration

	// Logs is optional; nil disables query logging.
	Logs LogSink

	CORSOrigins     []string
	RateLimit       int
	RateLimitWindow time.Duration

	Logger zerolog.Logger
}

type Server struct {
	sessions *session.Manager
	opts     Options
	call     Caller
	logger   zerolog.Logger

	next    atomic.Uint64
	pending sync.WaitGroup
}

func NewServer(sessions *session.Manager, opts Options) *Server {
	if opts.NodeTimeout <= 0 {
		opts.NodeTimeout = 2 * time.Second
	}
	return &Server{
		sessions: sessions,
		opts:     opts,
		call:     network.Call,
		logger:   opts.Logger.With().Str("component", "api").Logger(),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         86400,
		}))
	}

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if s.opts.RateLimit > 0 && s.opts.RateLimitWindow > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimit, s.opts.RateLimitWindow))
		}
		r.Get("/titles/search", s.handleSearch)
		r.Get("/recommend/{title}", s.handleRecommend)
		r.Get("/explain/{title}", s.handleExplain)
		r.Get("/graph/stats", s.handleGraphStats)
		r.Post("/reload", s.handleReload)
	})
	return r
}

// Wait blocks until queued query logs are written.
func (s *Server) Wait() {
	s.pending.Wait()
}

// pickNode returns the next node in rotation, "" when none are configured.
func (s *Server) pickNode() string {
	if len(s.opts.Nodes) == 0 {
		return ""
	}
	i := s.next.Add(1) - 1
	return s.opts.Nodes[i%uint64(len(s.opts.Nodes))]
}

// query answers req remotely when possible, locally otherwise.
func (s *Server) query(ctx context.Context, req network.RecommendRequest) (network.RecommendResponse, error) {
	if addr := s.pickNode(); addr != "" {
		callCtx, cancel := context.WithTimeout(ctx, s.opts.NodeTimeout)
		resp, err := s.call(callCtx, addr, req)
		cancel()
		if err == nil {
			metrics.NodeCallsTotal.WithLabelValues(addr, "ok").Inc()
			if resp.Node == "" {
				resp.Node = addr
			}
			return *resp, nil
		}
		metrics.NodeCallsTotal.WithLabelValues(addr, "error").Inc()
		s.logger.Warn().Err(err).
			Str("node", addr).
			Str("request_id", req.RequestID).
			Msg("node call failed, answering locally")
	}

	snap, err := s.sessions.Current()
	if err != nil {
		return network.RecommendResponse{}, err
	}
	resp := Answer(snap, req, LocalNode)
	if resp.Error != "" {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}

// logQuery writes doc in the background.
func (s *Server) logQuery(doc database.LogDocument) {
	if s.opts.Logs == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.opts.Logs.InsertLog(ctx, doc); err != nil {
			s.logger.Warn().Err(err).Str("request_id", doc.RequestID).Msg("query log not saved")
		}
	}()
}
