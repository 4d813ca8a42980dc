package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registered on the default registry through promauto; /metrics serves them.

var (
	// Recommendation queries by outcome: found, not_found, error, cached.
	RecommendQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grafo_recommend_queries_total",
			Help: "Total number of recommendation queries processed",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grafo_recommend_duration_seconds",
			Help:    "Time spent generating and scoring candidates for one query",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// Two-hop candidates scored per query. Popular genres blow this up.
	CandidatesPerQuery = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grafo_recommend_candidates",
			Help:    "Number of two-hop candidates scored per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "grafo_graph_nodes",
			Help: "Nodes in the live recommendation graph, by type",
		},
		[]string{"type"},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "grafo_graph_edges",
			Help: "Edges in the live recommendation graph",
		},
	)

	GraphReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grafo_graph_reloads_total",
			Help: "Graph rebuilds, by result",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grafo_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grafo_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	NodeCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grafo_node_calls_total",
			Help: "Calls from the API to TCP recommendation nodes",
		},
		[]string{"node", "result"},
	)
)
