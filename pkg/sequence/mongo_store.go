package sequence

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/benefitskit/core"
)

// DefaultCollection is the collection that stores counter documents.
const DefaultCollection = "counters"

// counterDoc is one row per counter name.
type counterDoc struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// MongoStore implements Generator with find-and-modify on a counters collection.
type MongoStore struct {
	coll *mongo.Collection
}

// MongoOption configures MongoStore.
type MongoOption func(*MongoStore)

// WithCollection overrides the counters collection name.
func WithCollection(name string) MongoOption {
	return func(s *MongoStore) {
		if name != "" {
			s.coll = s.coll.Database().Collection(name)
		}
	}
}

// NewMongoStore creates a MongoDB-backed counter store.
func NewMongoStore(db *mongo.Database, opts ...MongoOption) *MongoStore {
	s := &MongoStore{coll: db.Collection(DefaultCollection)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next atomically increments the counter, creating it on first use, and
// returns the post-increment value.
func (s *MongoStore) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)

	// Two first-time upserts can race on the _id index; the loser retries
	// once and then finds the document.
	if mongo.IsDuplicateKeyError(err) {
		err = s.coll.FindOneAndUpdate(ctx,
			bson.M{"_id": name},
			bson.M{"$inc": bson.M{"seq": int64(1)}},
			opts,
		).Decode(&doc)
	}
	if err != nil {
		return 0, core.Unavailable(err)
	}

	return doc.Seq, nil
}
