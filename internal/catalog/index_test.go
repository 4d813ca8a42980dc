package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_Search(t *testing.T) {
	idx := NewIndex([]string{
		"The Matrix Reloaded",
		"Matrix",
		"The Matrix",
		"Matrix Revolutions",
		"Inception",
		"the matrix",
		"The Matrix",
	})
	assert.Equal(t, 6, idx.Len())

	t.Run("exact then prefix then substring", func(t *testing.T) {
		got := idx.Search("the matrix", 0)
		assert.Equal(t, []string{
			"The Matrix",
			"the matrix",
			"The Matrix Reloaded",
		}, got)
	})

	t.Run("prefix alphabetical, substring in catalog order", func(t *testing.T) {
		got := idx.Search("MATRIX", 0)
		assert.Equal(t, []string{
			"Matrix",
			"Matrix Revolutions",
			"The Matrix Reloaded",
			"The Matrix",
			"the matrix",
		}, got)
	})

	t.Run("limit", func(t *testing.T) {
		assert.Equal(t, []string{"Matrix", "Matrix Revolutions"}, idx.Search("matrix", 2))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, idx.Search("zzz", 0))
		assert.Empty(t, idx.Search("   ", 0))
	})
}

func TestIndex_Best(t *testing.T) {
	idx := NewIndex([]string{"Stranger Things", "Things Heard & Seen"})

	best, ok := idx.Best("things")
	assert.True(t, ok)
	assert.Equal(t, "Things Heard & Seen", best)

	best, ok = idx.Best("stranger")
	assert.True(t, ok)
	assert.Equal(t, "Stranger Things", best)

	_, ok = idx.Best("nothing like it")
	assert.False(t, ok)
}
