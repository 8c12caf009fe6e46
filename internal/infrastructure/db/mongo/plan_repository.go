package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planventa/planning-system/internal/core/domain"
)

const planCollection = "plan_entries"

// PlanRepository persists sales-plan entries keyed by (shop, sku, month).
type PlanRepository struct {
	coll *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{coll: db.Collection(planCollection)}
}

type mongoPlanEntry struct {
	ShopID    int64  `bson:"shop_id"`
	SKU       string `bson:"sku"`
	Month     string `bson:"month"`
	Quantity  int64  `bson:"quantity"`
	UpdatedBy int64  `bson:"updated_by"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *PlanRepository) Upsert(ctx context.Context, entry *domain.PlanEntry) error {
	filter := bson.M{
		"shop_id": entry.ShopID,
		"sku":     entry.SKU,
		"month":   entry.Month,
	}
	doc := mongoPlanEntry{
		ShopID:    entry.ShopID,
		SKU:       entry.SKU,
		Month:     entry.Month,
		Quantity:  entry.Quantity,
		UpdatedBy: entry.UpdatedBy,
		UpdatedAt: entry.UpdatedAt.Unix(),
	}
	_, err := r.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert plan entry: %w", err)
	}
	return nil
}

func (r *PlanRepository) ListByShop(ctx context.Context, shopID int64) ([]domain.PlanEntry, error) {
	cur, err := r.coll.Find(ctx, bson.M{"shop_id": shopID})
	if err != nil {
		return nil, fmt.Errorf("list plan entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := []domain.PlanEntry{}
	for cur.Next(ctx) {
		var mp mongoPlanEntry
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode plan entry: %w", err)
		}
		entries = append(entries, domain.PlanEntry{
			ShopID:    mp.ShopID,
			SKU:       mp.SKU,
			Month:     mp.Month,
			Quantity:  mp.Quantity,
			UpdatedBy: mp.UpdatedBy,
			UpdatedAt: unixToTime(mp.UpdatedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list plan entries: %w", err)
	}
	return entries, nil
}
