package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/planventa/planning-system/internal/core/domain"
	"github.com/planventa/planning-system/internal/core/ports"
)

// PrincipalService resolves credentials into principals. It performs no
// writes: every request gets a freshly built, immutable principal, so the
// whole resolution is safe to retry by resubmitting the request.
type PrincipalService struct {
	credentials ports.CredentialStore
	roles       ports.RoleAssignmentStore
	tenants     ports.TenantStore
	now         func() time.Time
}

func NewPrincipalService(credentials ports.CredentialStore, roles ports.RoleAssignmentStore, tenants ports.TenantStore) *PrincipalService {
	return &PrincipalService{
		credentials: credentials,
		roles:       roles,
		tenants:     tenants,
		now:         time.Now,
	}
}

// ResolveSecret authenticates an opaque API key and resolves its user's
// principal. Unknown and expired secrets are indistinguishable: both return
// domain.ErrInvalidCredential.
func (s *PrincipalService) ResolveSecret(ctx context.Context, secret string) (*domain.Principal, error) {
	key, err := s.credentials.LookupSecretHash(ctx, hashSecret(secret))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}
	if key.Expired(s.now()) {
		return nil, domain.ErrInvalidCredential
	}
	return s.ResolveUser(ctx, key.UserID)
}

// ResolveUser resolves the principal for an already authenticated user id.
// The role-assignment and owned-tenant lookups have no data dependency on
// each other and run concurrently.
func (s *PrincipalService) ResolveUser(ctx context.Context, userID int64) (*domain.Principal, error) {
	var (
		assignments []domain.RoleAssignment
		ownedIDs    []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if assignments, err = s.roles.ListByUser(gctx, userID); err != nil {
			return fmt.Errorf("list role assignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if ownedIDs, err = s.tenants.ListOwnedTenantIDs(gctx, userID); err != nil {
			return fmt.Errorf("list owned tenants: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildPrincipal(userID, assignments, ownedIDs), nil
}

// buildPrincipal partitions raw assignment rows by scope shape and assembles
// the principal. Duplicate role rows collapse; row order is irrelevant.
func buildPrincipal(userID int64, assignments []domain.RoleAssignment, ownedIDs []int64) *domain.Principal {
	var (
		isSystemAdmin bool
		tenantRoles   = map[int64]domain.RoleSet{}
		shopRoles     = map[int64]domain.RoleSet{}
	)

	for _, a := range assignments {
		switch a.Scope() {
		case domain.ScopeGlobal:
			// Unrecognized global role names are ignored rather than
			// rejected, so new roles can be seeded ahead of a deploy.
			if a.Role == domain.RoleSystemAdmin {
				isSystemAdmin = true
			}
		case domain.ScopeTenant:
			addRole(tenantRoles, *a.TenantID, a.Role)
		case domain.ScopeShop:
			addRole(shopRoles, *a.ShopID, a.Role)
		}
	}

	owned := make(domain.IDSet, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = struct{}{}
	}

	return domain.NewPrincipal(userID, isSystemAdmin, owned, tenantRoles, shopRoles)
}

func addRole(m map[int64]domain.RoleSet, id int64, r domain.Role) {
	set, ok := m[id]
	if !ok {
		set = domain.RoleSet{}
		m[id] = set
	}
	set[r] = struct{}{}
}
