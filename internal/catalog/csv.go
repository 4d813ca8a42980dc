package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrMissingTitleColumn is returned when the header has no "title" column.
var ErrMissingTitleColumn = errors.New("catalog header has no title column")

const channelBuffer = 1024

// Options tune LoadCSV. The zero value is usable.
type Options struct {
	// Workers normalising rows. <= 0 means GOMAXPROCS.
	Workers int
}

// columns maps the Netflix header names to their positions; -1 when absent.
type columns struct {
	showID, kind, title, director, cast, country, year, listedIn int
}

func parseHeader(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	get := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	c := columns{
		showID:   get("show_id"),
		kind:     get("type"),
		title:    get("title"),
		director: get("director"),
		cast:     get("cast"),
		country:  get("country"),
		year:     get("release_year"),
		listedIn: get("listed_in"),
	}
	if c.title < 0 {
		return c, ErrMissingTitleColumn
	}
	return c, nil
}

// field returns the trimmed value at i, "" when the column is absent or the
// row is short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columns) record(row []string) Record {
	title := field(row, c.title)
	if title == "" {
		title = UnknownTitle
	}
	year, _ := strconv.Atoi(field(row, c.year))

	return Record{
		ShowID:      field(row, c.showID),
		Kind:        field(row, c.kind),
		Title:       title,
		ReleaseYear: year,
		Countries:   SplitList(field(row, c.country)),
		Genres:      SplitList(field(row, c.listedIn)),
		Directors:   SplitList(field(row, c.director)),
		Cast:        SplitList(field(row, c.cast)),
	}
}

// -------------------- Carga concurrente --------------------

type job struct {
	seq int
	row []string
}

type indexed struct {
	seq int
	rec Record
}

// LoadCSV reads the catalog at path.
func LoadCSV(ctx context.Context, path string, opts Options) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer file.Close()

	recs, err := Read(ctx, file, opts)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return recs, nil
}

// Read parses a header-driven catalog from r. Rows are normalised by a pool
// of workers; the result keeps file order.
func Read(ctx context.Context, r io.Reader, opts Options) ([]Record, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingTitleColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, channelBuffer)
	results := make(chan indexed, channelBuffer)

	g.Go(func() error {
		defer close(jobs)
		for seq := 0; ; seq++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := cr.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read row %d: %w", seq+1, err)
			}
			select {
			case jobs <- job{seq: seq, row: row}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				select {
				case results <- indexed{seq: j.seq, rec: cols.record(j.row)}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var rows []indexed
	for r := range results {
		rows = append(rows, r)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r.rec
	}
	return out, nil
}
