package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grafo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// isolate keeps the working directory and CONFIG_PATH from leaking a real file.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("PORT", "")
	os.Unsetenv("MONGO_URI")
	os.Unsetenv("PORT")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Dataset.Path, cfg.Dataset.Path)
	assert.Equal(t, "csv", cfg.Dataset.Source)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.NodeTimeout)
	assert.Equal(t, "9000", cfg.Node.Port)
	assert.Equal(t, 5, cfg.Recommend.TopN)
	assert.Equal(t, 8.0, cfg.Recommend.FranchiseBoost)
	assert.Equal(t, 1.0, cfg.Recommend.StructuralThreshold)
	assert.Equal(t, 0.7, cfg.Recommend.TypeWeights.Person)
	assert.Equal(t, 15, cfg.Graph.Aggregate.TopGenres)
	assert.Empty(t, cfg.Server.Nodes)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeYAML(t, `
dataset:
  path: /data/netflix.csv
  workers: 4
graph:
  include_people: true
recommend:
  top_n: 10
  type_weights:
    genre: 2.5
server:
  nodes:
    - node1:9000
    - node2:9000
  node_timeout: 750ms
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/netflix.csv", cfg.Dataset.Path)
	assert.Equal(t, 4, cfg.Dataset.Workers)
	assert.True(t, cfg.Graph.IncludePeople)
	assert.True(t, cfg.FullOptions().IncludePeople)
	assert.Equal(t, 10, cfg.Recommend.TopN)
	assert.Equal(t, 2.5, cfg.Recommend.TypeWeights.Genre)
	assert.Equal(t, 0.7, cfg.Recommend.TypeWeights.Person, "unset keys keep defaults")
	assert.Equal(t, []string{"node1:9000", "node2:9000"}, cfg.Server.Nodes)
	assert.Equal(t, 750*time.Millisecond, cfg.Server.NodeTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	isolate(t)
	path := writeYAML(t, "server:\n  addr: \":9999\"\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeYAML(t, "server:\n  addr: \":9999\"\n")
	t.Setenv("GRAFO_SERVER__ADDR", ":7000")
	t.Setenv("GRAFO_SERVER__NODES", "a:9000, b:9001,")
	t.Setenv("GRAFO_RECOMMEND__TOP_N", "3")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, []string{"a:9000", "b:9001"}, cfg.Server.Nodes)
	assert.Equal(t, 3, cfg.Recommend.TopN)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Equal(t, "9100", cfg.Node.Port)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeYAML(t, "server: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := Load(writeYAML(t, "dataset:\n  source: postgres\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("invalid recommend section", func(t *testing.T) {
		_, err := Load(writeYAML(t, "recommend:\n  top_n: 0\n"))
		assert.Error(t, err)
	})

	t.Run("bad node address", func(t *testing.T) {
		_, err := Load(writeYAML(t, "server:\n  nodes: [\"not an address\"]\n"))
		assert.Error(t, err)
	})
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"GRAFO_SERVER__ADDR", "server.addr"},
		{"GRAFO_RECOMMEND__TYPE_WEIGHTS__GENRE", "recommend.type_weights.genre"},
		{"GRAFO_DATASET__WATCH_DEBOUNCE", "dataset.watch_debounce"},
		{"MONGO_URI", "mongo.uri"},
		{"PORT", "node.port"},
		{"HOME", ""},
		{"PATH", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envTransformFunc(tt.in))
		})
	}
}

func TestValidate_Default(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Dataset.Source = "mongo"
	cfg.Dataset.Path = ""
	assert.NoError(t, cfg.Validate(), "path only required for csv")

	cfg.Dataset.Source = "csv"
	assert.Error(t, cfg.Validate())
}
