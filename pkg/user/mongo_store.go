package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/benefitskit/core"
)

// DefaultCollection is the collection that stores user documents.
const DefaultCollection = "users"

// MongoStore is a Store backed by a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed user store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(DefaultCollection)}
}

// EnsureIndexes creates the unique userName index that settles racing signups.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userName", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("userName_unique"),
	})
	if err != nil {
		return core.Unavailable(err)
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, u User) error {
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return core.Unavailable(err)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) FindByUserName(ctx context.Context, userName string) (*User, error) {
	return s.findOne(ctx, bson.M{"userName": userName})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var u User
	if err := s.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, core.Unavailable(err)
	}
	return &u, nil
}

func (s *MongoStore) List(ctx context.Context) ([]User, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, core.Unavailable(err)
	}

	var users []User
	if err := cur.All(ctx, &users); err != nil {
		return nil, core.Unavailable(err)
	}
	return users, nil
}

func (s *MongoStore) SetBenefitStartDate(ctx context.Context, id int64, date time.Time) (*User, error) {
	var u User
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"benefitStartDate": date}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, core.Unavailable(err)
	}
	return &u, nil
}

func (s *MongoStore) SetAdmin(ctx context.Context, id int64, admin bool) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isAdmin": admin}})
	if err != nil {
		return core.Unavailable(err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
