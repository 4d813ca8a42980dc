package analysis

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/recommend"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// Input gathers the graphs and engine one analysis run looks at.
type Input struct {
	Full         *graph.Graph
	CountryGenre *graph.Graph
	Regions      []NamedGraph
	Engine       *recommend.Engine

	TopN    int // rows in top tables; default 10
	Sample  int // titles evaluated for coverage; default 100
	Workers int
}

type Report struct {
	TopCountries   []Ranked
	TopGenres      []Ranked
	GenreStrength  []Ranked
	Degrees        DegreeSummary
	Regions        []RegionSummary
	Coverage       CoverageReport
	FullNodes      int
	FullEdges      int
	AggregateNodes int
	AggregateEdges int
}

// Analyze runs every report over in.
func Analyze(ctx context.Context, in Input) (Report, error) {
	if in.TopN <= 0 {
		in.TopN = 10
	}
	if in.Sample <= 0 {
		in.Sample = 100
	}

	rep := Report{
		TopCountries:   TopByDegree(in.Full, graph.TypeCountry, in.TopN),
		TopGenres:      TopByDegree(in.Full, graph.TypeGenre, in.TopN),
		GenreStrength:  WeightedStrength(in.CountryGenre, graph.TypeGenre, in.TopN),
		Degrees:        DegreeStats(in.CountryGenre),
		Regions:        CompareRegions(in.Regions, in.TopN),
		FullNodes:      in.Full.NumNodes(),
		FullEdges:      in.Full.NumEdges(),
		AggregateNodes: in.CountryGenre.NumNodes(),
		AggregateEdges: in.CountryGenre.NumEdges(),
	}

	cov, err := Coverage(ctx, in.Engine, SampleTitles(in.Full, in.Sample), in.Workers)
	if err != nil {
		return rep, err
	}
	rep.Coverage = cov
	return rep, nil
}

// ---------------------- EXPORTACIÓN CSV ----------------------

// WriteReport writes rep as a set of CSV files into dir, creating it.
func WriteReport(dir string, rep Report) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	files := map[string][][]string{
		"summary.csv": {
			{"Metric", "Value"},
			{"full_nodes", strconv.Itoa(rep.FullNodes)},
			{"full_edges", strconv.Itoa(rep.FullEdges)},
			{"country_genre_nodes", strconv.Itoa(rep.AggregateNodes)},
			{"country_genre_edges", strconv.Itoa(rep.AggregateEdges)},
			{"degree_mean", formatFloat(rep.Degrees.Mean)},
			{"degree_stddev", formatFloat(rep.Degrees.StdDev)},
			{"degree_median", formatFloat(rep.Degrees.Median)},
			{"degree_max", formatFloat(rep.Degrees.Max)},
			{"coverage_titles", strconv.Itoa(rep.Coverage.Titles)},
			{"coverage_empty", strconv.Itoa(rep.Coverage.Empty)},
			{"coverage_mean", formatFloat(rep.Coverage.Mean)},
		},
		"top_countries.csv":  rankedRows("Country", "Titles", rep.TopCountries),
		"top_genres.csv":     rankedRows("Genre", "Titles", rep.TopGenres),
		"genre_strength.csv": rankedRows("Genre", "WeightedStrength", rep.GenreStrength),
		"degree_distribution.csv": func() [][]string {
			rows := [][]string{{"Lower", "Upper", "Count"}}
			for _, b := range rep.Degrees.Histogram {
				rows = append(rows, []string{formatFloat(b.Lower), formatFloat(b.Upper), strconv.Itoa(b.Count)})
			}
			return rows
		}(),
		"region_comparison.csv": func() [][]string {
			rows := [][]string{{"Region", "Nodes", "Edges"}}
			for _, r := range rep.Regions {
				rows = append(rows, []string{r.Name, strconv.Itoa(r.Nodes), strconv.Itoa(r.Edges)})
			}
			return rows
		}(),
		"recommendation_coverage.csv": func() [][]string {
			rows := [][]string{{"Recommendations", "Titles"}}
			for _, b := range rep.Coverage.Histogram {
				rows = append(rows, []string{strconv.Itoa(b.Recommendations), strconv.Itoa(b.Titles)})
			}
			return rows
		}(),
	}
	for _, r := range rep.Regions {
		files["region_genres_"+sanitizeFilename(r.Name)+".csv"] = rankedRows("Genre", "WeightedStrength", r.TopGenres)
	}

	for name, rows := range files {
		if err := saveCSV(filepath.Join(dir, name), rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteSpeedup writes one row per worker count, creating parent directories.
func WriteSpeedup(path string, points []SpeedupPoint) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	rows := [][]string{{"Workers", "ElapsedSeconds", "Speedup"}}
	for _, p := range points {
		rows = append(rows, []string{
			strconv.Itoa(p.Workers),
			fmt.Sprintf("%.6f", p.Elapsed.Seconds()),
			fmt.Sprintf("%.3f", p.Speedup),
		})
	}
	return saveCSV(path, rows)
}

func rankedRows(labelCol, valueCol string, ranked []Ranked) [][]string {
	rows := [][]string{{labelCol, valueCol}}
	for _, r := range ranked {
		rows = append(rows, []string{r.Label, formatFloat(r.Value)})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func saveCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sanitizeFilename(s string) string {
	out := strings.ReplaceAll(s, "/", "_")
	out = strings.ReplaceAll(out, "\\", "_")
	out = strings.ReplaceAll(out, " ", "_")
	return strings.ToLower(out)
}
