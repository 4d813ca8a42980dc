package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	titlesCollection = "titles"
	logsCollection   = "logs"

	connectTimeout = 10 * time.Second
)

// Store wraps one client and the database holding the catalog and logs.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// -------------------------
// Conexión
// -------------------------

func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	// Verificar conexión
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return NewStore(client, dbName), nil
}

// NewStore uses an already connected client.
func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Titles() *mongo.Collection {
	return s.db.Collection(titlesCollection)
}

func (s *Store) Logs() *mongo.Collection {
	return s.db.Collection(logsCollection)
}

// -------------------------
// Catálogo
// -------------------------

// ReplaceTitles drops the stored catalog and writes docs in order.
func (s *Store) ReplaceTitles(ctx context.Context, docs []TitleDocument) (int, error) {
	if _, err := s.Titles().DeleteMany(ctx, bson.D{}); err != nil {
		return 0, fmt.Errorf("clear titles: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	batch := make([]interface{}, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}
	res, err := s.Titles().InsertMany(ctx, batch, options.InsertMany().SetOrdered(true))
	if err != nil {
		return 0, fmt.Errorf("insert titles: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// FindTitles returns the stored catalog sorted by Seq.
func (s *Store) FindTitles(ctx context.Context) ([]TitleDocument, error) {
	cur, err := s.Titles().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find titles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []TitleDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode titles: %w", err)
	}
	return docs, nil
}

// -------------------------
// Logs
// -------------------------

func (s *Store) InsertLog(ctx context.Context, doc LogDocument) error {
	if doc.TimestampUnix == 0 {
		doc.TimestampUnix = time.Now().Unix()
	}
	if _, err := s.Logs().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}
