// Package config loads the settings shared by the grafo binaries.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML file,
// environment variables. Nested keys use a double underscore in the
// environment, so recommend.franchise_boost is GRAFO_RECOMMEND__FRANCHISE_BOOST.
// The older MONGO_URI and PORT variables are still honoured.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/builder"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/logging"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/recommend"
)

type Config struct {
	Dataset   DatasetConfig    `koanf:"dataset"`
	Graph     GraphConfig      `koanf:"graph"`
	Recommend recommend.Config `koanf:"recommend"`
	Server    ServerConfig     `koanf:"server"`
	Node      NodeConfig       `koanf:"node"`
	Mongo     MongoConfig      `koanf:"mongo"`
	Logging   logging.Config   `koanf:"logging"`
}

type DatasetConfig struct {
	// Source: csv or mongo.
	Source string `koanf:"source" validate:"oneof=csv mongo"`

	// Path of the Netflix catalog CSV.
	Path string `koanf:"path" validate:"required_if=Source csv"`

	// Workers normalising rows; 0 means GOMAXPROCS.
	Workers int `koanf:"workers" validate:"gte=0"`

	// Watch rebuilds the graph when the CSV changes.
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce" validate:"gte=0"`
}

type GraphConfig struct {
	// IncludePeople adds directors and cast as person nodes.
	IncludePeople       bool                     `koanf:"include_people"`
	Aggregate           builder.AggregateOptions `koanf:"aggregate"`
	RegionMinEdgeWeight int                      `koanf:"region_min_edge_weight" validate:"gte=1"`
}

type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`

	// Nodes are TCP recommendation nodes (host:port). Empty serves locally.
	Nodes       []string      `koanf:"nodes" validate:"dive,hostname_port"`
	NodeTimeout time.Duration `koanf:"node_timeout" validate:"gt=0"`

	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`

	// CORSOrigins allowed to call the API from a browser. Empty disables CORS.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is requests per RateLimitWindow per client IP. 0 disables.
	RateLimit       int           `koanf:"rate_limit" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
}

type NodeConfig struct {
	Port        string        `koanf:"port" validate:"required,numeric"`
	ConnTimeout time.Duration `koanf:"conn_timeout" validate:"gte=0"`
}

type MongoConfig struct {
	URI      string `koanf:"uri" validate:"required"`
	Database string `koanf:"database" validate:"required"`

	// LogQueries stores one LogDocument per API query.
	LogQueries bool `koanf:"log_queries"`
}

func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:        "csv",
			Path:          "data/raw/netflix_titles.csv",
			WatchDebounce: 500 * time.Millisecond,
		},
		Graph: GraphConfig{
			Aggregate:           builder.DefaultAggregateOptions(),
			RegionMinEdgeWeight: builder.DefaultRegionMinEdgeWeight,
		},
		Recommend: recommend.DefaultConfig(),
		Server: ServerConfig{
			Addr:            ":8080",
			NodeTimeout:     2 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       100,
			RateLimitWindow: time.Minute,
		},
		Node: NodeConfig{
			Port:        "9000",
			ConnTimeout: 5 * time.Second,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "grafo",
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// FullOptions maps the graph section onto the full-graph builder.
func (c *Config) FullOptions() builder.FullOptions {
	return builder.FullOptions{IncludePeople: c.Graph.IncludePeople}
}
