package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planventa/planning-system/internal/core/domain"
)

const (
	tenantCollection = "tenants"
	shopCollection   = "shops"
)

// TenantRepository persists tenants and serves the owned-tenant lookup the
// resolver folds into the principal.
type TenantRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTenantRepository(db *mongo.Database) *TenantRepository {
	return &TenantRepository{db: db, coll: db.Collection(tenantCollection)}
}

type mongoTenant struct {
	ID        int64  `bson:"_id"`
	Name      string `bson:"name"`
	OwnerID   int64  `bson:"owner_id"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *TenantRepository) ListOwnedTenantIDs(ctx context.Context, userID int64) ([]int64, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list owned tenants: %w", err)
	}
	defer cur.Close(ctx)

	var ids []int64
	for cur.Next(ctx) {
		var mt mongoTenant
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode tenant: %w", err)
		}
		ids = append(ids, mt.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list owned tenants: %w", err)
	}
	return ids, nil
}

func (r *TenantRepository) FindByID(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	var mt mongoTenant
	if err := r.coll.FindOne(ctx, bson.M{"_id": tenantID}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	t := toDomainTenant(mt)
	return &t, nil
}

func (r *TenantRepository) FindByIDs(ctx context.Context, tenantIDs []int64) ([]domain.Tenant, error) {
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": tenantIDs}})
	if err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}
	defer cur.Close(ctx)

	tenants := make([]domain.Tenant, 0, len(tenantIDs))
	for cur.Next(ctx) {
		var mt mongoTenant
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode tenant: %w", err)
		}
		tenants = append(tenants, toDomainTenant(mt))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}
	return tenants, nil
}

func (r *TenantRepository) Insert(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	id, err := nextID(ctx, r.db, tenantCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoTenant{
		ID:        id,
		Name:      tenant.Name,
		OwnerID:   tenant.OwnerID,
		CreatedAt: tenant.CreatedAt.Unix(),
		UpdatedAt: tenant.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert tenant: %w", err)
	}

	created := *tenant
	created.ID = id
	return &created, nil
}

func toDomainTenant(mt mongoTenant) domain.Tenant {
	return domain.Tenant{
		ID:        mt.ID,
		Name:      mt.Name,
		OwnerID:   mt.OwnerID,
		CreatedAt: unixToTime(mt.CreatedAt),
		UpdatedAt: unixToTime(mt.UpdatedAt),
	}
}
