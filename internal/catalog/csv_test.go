package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const netflixSample = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,"As her father nears the end of his life..."
s2,TV Show,Blood & Water,,"Ama Qamata, Khosi Ngema",South Africa,"September 24, 2021",2021,TV-MA,2 Seasons,"International TV Shows, TV Dramas, TV Mysteries","After crossing paths at a party..."
s3,Movie,,Someone,,"France, , Belgium",,2019,,,"Dramas ,  Comedies",
s4,Movie,Short Row
`

func TestRead(t *testing.T) {
	recs, err := Read(context.Background(), strings.NewReader(netflixSample), Options{Workers: 3})
	require.NoError(t, err)
	require.Len(t, recs, 4)

	assert.Equal(t, Record{
		ShowID:      "s1",
		Kind:        "Movie",
		Title:       "Dick Johnson Is Dead",
		ReleaseYear: 2020,
		Countries:   []string{"United States"},
		Genres:      []string{"Documentaries"},
		Directors:   []string{"Kirsten Johnson"},
	}, recs[0])

	assert.Equal(t, []string{"International TV Shows", "TV Dramas", "TV Mysteries"}, recs[1].Genres)
	assert.Equal(t, []string{"Ama Qamata", "Khosi Ngema"}, recs[1].Cast)

	t.Run("blank title and padded lists", func(t *testing.T) {
		assert.Equal(t, UnknownTitle, recs[2].Title)
		assert.Equal(t, []string{"France", "Belgium"}, recs[2].Countries)
		assert.Equal(t, []string{"Dramas", "Comedies"}, recs[2].Genres)
	})

	t.Run("short row", func(t *testing.T) {
		assert.Equal(t, "Short Row", recs[3].Title)
		assert.Empty(t, recs[3].Countries)
		assert.Empty(t, recs[3].Genres)
		assert.Zero(t, recs[3].ReleaseYear)
	})
}

func TestRead_PreservesOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString("title,country,listed_in\n")
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&b, "Title %d,US,Drama\n", i)
	}

	recs, err := Read(context.Background(), strings.NewReader(b.String()), Options{Workers: 8})
	require.NoError(t, err)
	require.Len(t, recs, 5000)
	for i, r := range recs {
		require.Equal(t, fmt.Sprintf("Title %d", i), r.Title)
	}
}

func TestRead_Header(t *testing.T) {
	t.Run("title column required", func(t *testing.T) {
		_, err := Read(context.Background(), strings.NewReader("name,country\nX,US\n"), Options{})
		assert.ErrorIs(t, err, ErrMissingTitleColumn)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Read(context.Background(), strings.NewReader(""), Options{})
		assert.ErrorIs(t, err, ErrMissingTitleColumn)
	})

	t.Run("byte order mark and case", func(t *testing.T) {
		recs, err := Read(context.Background(), strings.NewReader("\ufeffTitle,Country\nX,US\n"), Options{})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "X", recs[0].Title)
		assert.Equal(t, []string{"US"}, recs[0].Countries)
	})

	t.Run("header only", func(t *testing.T) {
		recs, err := Read(context.Background(), strings.NewReader("title\n"), Options{})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func TestRead_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, strings.NewReader(netflixSample), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netflix_titles.csv")
	require.NoError(t, os.WriteFile(path, []byte(netflixSample), 0o644))

	recs, err := LoadCSV(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Len(t, recs, 4)

	_, err = LoadCSV(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"US", []string{"US"}},
		{"US, France", []string{"US", "France"}},
		{" ,US,, ", []string{"US"}},
	}
	for _, tt := range tests {
		got := SplitList(tt.in)
		if tt.want == nil {
			assert.Empty(t, got, tt.in)
			continue
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestWriteCSV_ReadBack(t *testing.T) {
	recs, err := Read(context.Background(), strings.NewReader(netflixSample), Options{Workers: 2})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "clean", "titles.csv")
	require.NoError(t, WriteCSVFile(path, recs))

	again, err := LoadCSV(context.Background(), path, Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, recs, again)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), strings.Join(CleanHeader, ",")+"\n"))
}
