package catalog

import (
	"strings"

	"github.com/tidwall/btree"
)

type indexItem struct {
	key string // lower-cased label
	seq int
}

func indexItemLess(a, b indexItem) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}

// Index answers case-insensitive title lookups. Exact matches come first,
// then prefix matches in alphabetical order, then any other title containing
// the term, in catalog order. Safe for concurrent reads once built.
type Index struct {
	labels []string
	lower  []string
	tree   *btree.BTreeG[indexItem]
}

// NewIndex indexes labels in the given order. Repeated labels keep the first.
func NewIndex(labels []string) *Index {
	idx := &Index{tree: btree.NewBTreeG[indexItem](indexItemLess)}
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		seq := len(idx.labels)
		idx.labels = append(idx.labels, l)
		idx.lower = append(idx.lower, strings.ToLower(l))
		idx.tree.Set(indexItem{key: idx.lower[seq], seq: seq})
	}
	return idx
}

func (idx *Index) Len() int { return len(idx.labels) }

// Search returns up to limit labels matching term. limit <= 0 means all.
func (idx *Index) Search(term string, limit int) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var out []string
	taken := make(map[int]struct{})
	full := func() bool { return limit > 0 && len(out) >= limit }

	var exact, prefix []int
	idx.tree.Ascend(indexItem{key: term, seq: -1}, func(it indexItem) bool {
		if !strings.HasPrefix(it.key, term) {
			return false
		}
		if it.key == term {
			exact = append(exact, it.seq)
		} else {
			prefix = append(prefix, it.seq)
		}
		return true
	})

	for _, group := range [][]int{exact, prefix} {
		for _, seq := range group {
			if full() {
				return out
			}
			out = append(out, idx.labels[seq])
			taken[seq] = struct{}{}
		}
	}

	for seq, l := range idx.lower {
		if full() {
			break
		}
		if _, ok := taken[seq]; ok {
			continue
		}
		if strings.Contains(l, term) {
			out = append(out, idx.labels[seq])
		}
	}
	return out
}

// Best is the first Search hit.
func (idx *Index) Best(term string) (string, bool) {
	hits := idx.Search(term, 1)
	if len(hits) == 0 {
		return "", false
	}
	return hits[0], true
}
