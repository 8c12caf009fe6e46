package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planventa/planning-system/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository appends authorization audit events. Write-only by design;
// reads happen through offline tooling.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	Action   string `bson:"action"`
	UserID   int64  `bson:"user_id,omitempty"`
	TenantID int64  `bson:"tenant_id,omitempty"`
	ShopID   int64  `bson:"shop_id,omitempty"`
	Detail   string `bson:"detail,omitempty"`
	At       int64  `bson:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		Action:   string(event.Action),
		UserID:   event.UserID,
		TenantID: event.TenantID,
		ShopID:   event.ShopID,
		Detail:   event.Detail,
		At:       event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
