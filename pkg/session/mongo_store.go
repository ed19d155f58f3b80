package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/benefitskit/core"
)

// DefaultCollection is the collection that stores session documents.
const DefaultCollection = "sessions"

type mongoSession struct {
	Key            string    `bson:"_id"`
	SessionID      string    `bson:"sessionId"`
	UserID         *int64    `bson:"userId,omitempty"`
	CSRFToken      string    `bson:"csrfToken"`
	LastActivityAt time.Time `bson:"lastActivityAt"`
	CreatedAt      time.Time `bson:"createdAt"`
	ExpiresAt      time.Time `bson:"expiresAt"`
}

// MongoStore is a Store backed by a MongoDB collection. Raw tokens are never
// persisted; documents are keyed by their SHA-256.
type MongoStore struct {
	coll      *mongo.Collection
	retention time.Duration
}

// NewMongoStore creates a MongoDB-backed session store.
func NewMongoStore(db *mongo.Database, opts ...StoreOption) *MongoStore {
	cfg := newStoreConfig(opts)
	return &MongoStore{coll: db.Collection(DefaultCollection), retention: cfg.retention}
}

// EnsureIndexes creates the TTL index on expiresAt and the userId index.
// The TTL monitor waits the retention past expiresAt, so the idle check,
// not the monitor, decides the boundary.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(s.retention / time.Second)).SetName("expiresAt_ttl"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId"),
		},
	})
	if err != nil {
		return core.Unavailable(err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *MongoStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	doc := mongoSession{
		Key:            hashToken(session.Token),
		SessionID:      session.ID.String(),
		UserID:         session.UserID,
		CSRFToken:      session.CSRFToken,
		LastActivityAt: session.LastActivityAt,
		CreatedAt:      session.CreatedAt,
		ExpiresAt:      session.ExpiresAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return core.Unavailable(err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, token string) (*Session, error) {
	var doc mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": hashToken(token)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, core.Unavailable(err)
	}

	id, _ := uuid.Parse(doc.SessionID)
	return &Session{
		ID:             id,
		Token:          token,
		UserID:         doc.UserID,
		CSRFToken:      doc.CSRFToken,
		LastActivityAt: doc.LastActivityAt,
		CreatedAt:      doc.CreatedAt,
		ExpiresAt:      doc.ExpiresAt,
	}, nil
}

func (s *MongoStore) UpdateActivity(ctx context.Context, token string, lastActivity, expiresAt time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": hashToken(token)},
		bson.M{"$set": bson.M{"lastActivityAt": lastActivity, "expiresAt": expiresAt}},
	)
	if err != nil {
		return core.Unavailable(err)
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, token string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": hashToken(token)}); err != nil {
		return core.Unavailable(err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before cutoff ahead of the
// TTL monitor.
func (s *MongoStore) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": cutoff}}); err != nil {
		return core.Unavailable(err)
	}
	return nil
}
