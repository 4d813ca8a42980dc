// Package catalog loads the title catalog that feeds the graph builders and
// provides the title search used by the CLI and the API.
package catalog

import "strings"

// UnknownTitle replaces a missing or blank title.
const UnknownTitle = "Unknown Title"

// Record is one normalised catalog row. List fields never contain blanks.
type Record struct {
	ShowID      string
	Kind        string // Movie, TV Show
	Title       string
	ReleaseYear int
	Countries   []string
	Genres      []string
	Directors   []string
	Cast        []string
}

// SplitList splits a comma-joined field, trimming parts and dropping empties.
func SplitList(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
