package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CleanHeader is the column set WriteCSV produces. Read accepts it back.
var CleanHeader = []string{"show_id", "type", "title", "director", "cast", "country", "release_year", "listed_in"}

// WriteCSV writes normalised records, lists joined with ", ".
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CleanHeader); err != nil {
		return err
	}
	for _, r := range recs {
		year := ""
		if r.ReleaseYear != 0 {
			year = strconv.Itoa(r.ReleaseYear)
		}
		row := []string{
			r.ShowID,
			r.Kind,
			r.Title,
			strings.Join(r.Directors, ", "),
			strings.Join(r.Cast, ", "),
			strings.Join(r.Countries, ", "),
			year,
			strings.Join(r.Genres, ", "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes recs to path, creating parent directories.
func WriteCSVFile(path string, recs []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, recs); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
