package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	ctx := context.Background()

	mt.Run("find titles in stored order", func(mt *mtest.T) {
		s := NewStore(mt.Client, "grafo")

		first := mtest.CreateCursorResponse(1, "grafo.titles", mtest.FirstBatch,
			bson.D{
				{Key: "seq", Value: 0},
				{Key: "title", Value: "T1"},
				{Key: "countries", Value: bson.A{"US"}},
				{Key: "genres", Value: bson.A{"Drama"}},
			})
		next := mtest.CreateCursorResponse(1, "grafo.titles", mtest.NextBatch,
			bson.D{
				{Key: "seq", Value: 1},
				{Key: "title", Value: "T2"},
				{Key: "countries", Value: bson.A{"FR", "US"}},
			})
		end := mtest.CreateCursorResponse(0, "grafo.titles", mtest.NextBatch)
		mt.AddMockResponses(first, next, end)

		docs, err := s.FindTitles(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "T1", docs[0].Title)
		assert.Equal(t, []string{"Drama"}, docs[0].Genres)
		assert.Equal(t, 1, docs[1].Seq)
		assert.Equal(t, []string{"FR", "US"}, docs[1].Countries)
	})

	mt.Run("replace titles", func(mt *mtest.T) {
		s := NewStore(mt.Client, "grafo")
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
		)

		n, err := s.ReplaceTitles(ctx, []TitleDocument{
			{Seq: 0, Title: "T1"},
			{Seq: 1, Title: "T2"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	mt.Run("replace with nothing only clears", func(mt *mtest.T) {
		s := NewStore(mt.Client, "grafo")
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		n, err := s.ReplaceTitles(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	mt.Run("insert log", func(mt *mtest.T) {
		s := NewStore(mt.Client, "grafo")
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := s.InsertLog(ctx, LogDocument{RequestID: "r1", Query: "T1", Resolved: true, Results: 1})
		assert.NoError(t, err)
	})

	mt.Run("insert log error is wrapped", func(mt *mtest.T) {
		s := NewStore(mt.Client, "grafo")
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := s.InsertLog(ctx, LogDocument{RequestID: "r1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert log")
	})
}
