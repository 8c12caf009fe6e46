package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planventa/planning-system/internal/core/domain"
)

const apiKeyCollection = "api_keys"

// CredentialRepository persists API keys. Only the SHA-256 hash of a secret
// is ever stored; lookups filter out expired keys so an expired secret is
// indistinguishable from an unknown one.
type CredentialRepository struct {
	coll *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{coll: db.Collection(apiKeyCollection)}
}

type mongoAPIKey struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     int64              `bson:"user_id"`
	SecretHash string             `bson:"secret_hash"`
	Name       string             `bson:"name"`
	ExpiresAt  *int64             `bson:"expires_at,omitempty"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *CredentialRepository) LookupSecretHash(ctx context.Context, secretHash string) (*domain.APIKey, error) {
	filter := bson.M{
		"secret_hash": secretHash,
		"$or": bson.A{
			bson.M{"expires_at": bson.M{"$exists": false}},
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": time.Now().Unix()}},
		},
	}

	var mk mongoAPIKey
	if err := r.coll.FindOne(ctx, filter).Decode(&mk); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("lookup api key: %w", err)
	}
	return toDomainKey(mk), nil
}

func (r *CredentialRepository) Insert(ctx context.Context, key *domain.APIKey) error {
	doc := mongoAPIKey{
		UserID:     key.UserID,
		SecretHash: key.SecretHash,
		Name:       key.Name,
		CreatedAt:  key.CreatedAt.Unix(),
	}
	if key.ExpiresAt != nil {
		exp := key.ExpiresAt.Unix()
		doc.ExpiresAt = &exp
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		key.ID = oid.Hex()
	}
	return nil
}

func (r *CredentialRepository) Revoke(ctx context.Context, keyID string) error {
	oid, err := primitive.ObjectIDFromHex(keyID)
	if err != nil {
		return domain.ErrKeyNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrKeyNotFound
	}
	return nil
}

func toDomainKey(mk mongoAPIKey) *domain.APIKey {
	key := &domain.APIKey{
		ID:         mk.ID.Hex(),
		UserID:     mk.UserID,
		SecretHash: mk.SecretHash,
		Name:       mk.Name,
		CreatedAt:  unixToTime(mk.CreatedAt),
	}
	if mk.ExpiresAt != nil {
		exp := unixToTime(*mk.ExpiresAt)
		key.ExpiresAt = &exp
	}
	return key
}
