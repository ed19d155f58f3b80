package allocation

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/benefitskit/core"
)

// DefaultCollection is the collection that stores allocation documents.
const DefaultCollection = "allocations"

// MongoStore is a Store backed by a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed allocation store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(DefaultCollection)}
}

// EnsureIndexes creates the unique userId index and the stocks index used by
// threshold queries.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("userId_unique"),
		},
		{
			Keys:    bson.D{{Key: "stocks", Value: 1}},
			Options: options.Index().SetName("stocks"),
		},
	})
	if err != nil {
		return core.Unavailable(err)
	}
	return nil
}

// Upsert replaces the whole document for a.UserID, inserting it if absent.
func (s *MongoStore) Upsert(ctx context.Context, a Allocation) error {
	replace := func() error {
		_, err := s.coll.ReplaceOne(ctx, bson.M{"userId": a.UserID}, a, options.Replace().SetUpsert(true))
		return err
	}

	err := replace()
	// Concurrent first writes for one user collide on the unique index; the
	// document exists now, so a second replace succeeds.
	if mongo.IsDuplicateKeyError(err) {
		err = replace()
	}
	if err != nil {
		return core.Unavailable(err)
	}
	return nil
}

func (s *MongoStore) FindByUser(ctx context.Context, userID int64) (*Allocation, error) {
	var a Allocation
	if err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoMatch
		}
		return nil, core.Unavailable(err)
	}
	return &a, nil
}

func (s *MongoStore) FindStocksAbove(ctx context.Context, threshold int) ([]Allocation, error) {
	cur, err := s.coll.Find(ctx,
		bson.M{"stocks": bson.M{"$gt": threshold}},
		options.Find().SetSort(bson.D{{Key: "userId", Value: 1}}),
	)
	if err != nil {
		return nil, core.Unavailable(err)
	}

	var out []Allocation
	if err := cur.All(ctx, &out); err != nil {
		return nil, core.Unavailable(err)
	}
	return out, nil
}
