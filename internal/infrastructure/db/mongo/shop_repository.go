package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planventa/planning-system/internal/core/domain"
)

// ShopRepository persists shops.
type ShopRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{db: db, coll: db.Collection(shopCollection)}
}

type mongoShop struct {
	ID        int64  `bson:"_id"`
	TenantID  int64  `bson:"tenant_id"`
	Name      string `bson:"name"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *ShopRepository) FindByID(ctx context.Context, shopID int64) (*domain.Shop, error) {
	var ms mongoShop
	if err := r.coll.FindOne(ctx, bson.M{"_id": shopID}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return &domain.Shop{
		ID:        ms.ID,
		TenantID:  ms.TenantID,
		Name:      ms.Name,
		CreatedAt: unixToTime(ms.CreatedAt),
		UpdatedAt: unixToTime(ms.UpdatedAt),
	}, nil
}

func (r *ShopRepository) Insert(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	id, err := nextID(ctx, r.db, shopCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoShop{
		ID:        id,
		TenantID:  shop.TenantID,
		Name:      shop.Name,
		CreatedAt: shop.CreatedAt.Unix(),
		UpdatedAt: shop.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}

	created := *shop
	created.ID = id
	return &created, nil
}
