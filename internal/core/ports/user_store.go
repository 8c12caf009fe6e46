package ports

import (
	"context"

	"github.com/planventa/planning-system/internal/core/domain"
)

// UserStore persists user accounts for the email/password login surface.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, userID int64) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}

// PlanStore persists sales-plan entries per shop.
type PlanStore interface {
	Upsert(ctx context.Context, entry *domain.PlanEntry) error
	ListByShop(ctx context.Context, shopID int64) ([]domain.PlanEntry, error)
}
