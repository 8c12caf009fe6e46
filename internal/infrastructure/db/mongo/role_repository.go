package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planventa/planning-system/internal/core/domain"
)

const roleAssignmentCollection = "role_assignments"

// RoleAssignmentRepository persists raw role-assignment rows. The write path
// validates that a shop-scoped row's shop belongs to the tenant id it
// carries; readers rely on that invariant.
type RoleAssignmentRepository struct {
	coll  *mongo.Collection
	shops *mongo.Collection
}

func NewRoleAssignmentRepository(db *mongo.Database) *RoleAssignmentRepository {
	return &RoleAssignmentRepository{
		coll:  db.Collection(roleAssignmentCollection),
		shops: db.Collection(shopCollection),
	}
}

type mongoAssignment struct {
	UserID   int64  `bson:"user_id"`
	Role     string `bson:"role"`
	TenantID *int64 `bson:"tenant_id,omitempty"`
	ShopID   *int64 `bson:"shop_id,omitempty"`
}

func (r *RoleAssignmentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.RoleAssignment, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list role assignments: %w", err)
	}
	defer cur.Close(ctx)

	var assignments []domain.RoleAssignment
	for cur.Next(ctx) {
		var ma mongoAssignment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode role assignment: %w", err)
		}
		assignments = append(assignments, domain.RoleAssignment{
			UserID:   ma.UserID,
			Role:     domain.Role(ma.Role),
			TenantID: ma.TenantID,
			ShopID:   ma.ShopID,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list role assignments: %w", err)
	}
	return assignments, nil
}

func (r *RoleAssignmentRepository) Grant(ctx context.Context, a domain.RoleAssignment) error {
	if err := r.checkShopTenant(ctx, a); err != nil {
		return err
	}
	doc := mongoAssignment{
		UserID:   a.UserID,
		Role:     string(a.Role),
		TenantID: a.TenantID,
		ShopID:   a.ShopID,
	}
	// Upsert on the full row: re-granting an existing role is a no-op.
	_, err := r.coll.ReplaceOne(ctx, assignmentFilter(a), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}

func (r *RoleAssignmentRepository) Revoke(ctx context.Context, a domain.RoleAssignment) error {
	if _, err := r.coll.DeleteMany(ctx, assignmentFilter(a)); err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}

// checkShopTenant enforces the store invariant: a shop-scoped row carrying a
// tenant id must reference a shop under that tenant.
func (r *RoleAssignmentRepository) checkShopTenant(ctx context.Context, a domain.RoleAssignment) error {
	if a.ShopID == nil || a.TenantID == nil {
		return nil
	}
	var shop mongoShop
	if err := r.shops.FindOne(ctx, bson.M{"_id": *a.ShopID}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.ErrShopNotFound
		}
		return fmt.Errorf("check shop tenant: %w", err)
	}
	if shop.TenantID != *a.TenantID {
		return fmt.Errorf("shop %d does not belong to tenant %d", *a.ShopID, *a.TenantID)
	}
	return nil
}

func assignmentFilter(a domain.RoleAssignment) bson.M {
	filter := bson.M{
		"user_id": a.UserID,
		"role":    string(a.Role),
	}
	if a.TenantID != nil {
		filter["tenant_id"] = *a.TenantID
	}
	if a.ShopID != nil {
		filter["shop_id"] = *a.ShopID
	}
	return filter
}
