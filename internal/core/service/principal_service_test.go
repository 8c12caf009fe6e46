package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/planventa/planning-system/internal/core/domain"
)

func ptr(v int64) *int64 { return &v }

// stubCredentialStore holds keys by secret hash.
type stubCredentialStore struct {
	keys map[string]*domain.APIKey
	err  error
}

func (s *stubCredentialStore) LookupSecretHash(_ context.Context, secretHash string) (*domain.APIKey, error) {
	if s.err != nil {
		return nil, s.err
	}
	key, ok := s.keys[secretHash]
	if !ok {
		return nil, domain.ErrInvalidCredential
	}
	return key, nil
}

func (s *stubCredentialStore) Insert(_ context.Context, key *domain.APIKey) error {
	if s.keys == nil {
		s.keys = map[string]*domain.APIKey{}
	}
	s.keys[key.SecretHash] = key
	return nil
}

func (s *stubCredentialStore) Revoke(_ context.Context, keyID string) error {
	for hash, key := range s.keys {
		if key.ID == keyID {
			delete(s.keys, hash)
			return nil
		}
	}
	return domain.ErrKeyNotFound
}

type stubRoleStore struct {
	assignments map[int64][]domain.RoleAssignment
	err         error
}

func (s *stubRoleStore) ListByUser(_ context.Context, userID int64) ([]domain.RoleAssignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assignments[userID], nil
}

func (s *stubRoleStore) Grant(_ context.Context, a domain.RoleAssignment) error {
	if s.assignments == nil {
		s.assignments = map[int64][]domain.RoleAssignment{}
	}
	s.assignments[a.UserID] = append(s.assignments[a.UserID], a)
	return nil
}

func (s *stubRoleStore) Revoke(_ context.Context, a domain.RoleAssignment) error {
	rows := s.assignments[a.UserID]
	kept := rows[:0]
	for _, row := range rows {
		if row.Role != a.Role {
			kept = append(kept, row)
		}
	}
	s.assignments[a.UserID] = kept
	return nil
}

type stubTenantStore struct {
	tenants map[int64]*domain.Tenant
	owned   map[int64][]int64
	err     error
	nextID  int64
}

func (s *stubTenantStore) ListOwnedTenantIDs(_ context.Context, userID int64) ([]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.owned[userID], nil
}

func (s *stubTenantStore) FindByID(_ context.Context, tenantID int64) (*domain.Tenant, error) {
	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	return t, nil
}

func (s *stubTenantStore) FindByIDs(_ context.Context, tenantIDs []int64) ([]domain.Tenant, error) {
	out := []domain.Tenant{}
	for _, id := range tenantIDs {
		if t, ok := s.tenants[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *stubTenantStore) Insert(_ context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	s.nextID++
	created := *tenant
	created.ID = s.nextID
	if s.tenants == nil {
		s.tenants = map[int64]*domain.Tenant{}
	}
	s.tenants[created.ID] = &created
	return &created, nil
}

func newResolver(creds *stubCredentialStore, roles *stubRoleStore, tenants *stubTenantStore) *PrincipalService {
	if creds == nil {
		creds = &stubCredentialStore{}
	}
	if roles == nil {
		roles = &stubRoleStore{}
	}
	if tenants == nil {
		tenants = &stubTenantStore{}
	}
	return NewPrincipalService(creds, roles, tenants)
}

func storedKey(secret string, userID int64, expiresAt *time.Time) *stubCredentialStore {
	return &stubCredentialStore{keys: map[string]*domain.APIKey{
		hashSecret(secret): {ID: "k1", UserID: userID, SecretHash: hashSecret(secret), ExpiresAt: expiresAt},
	}}
}

func TestResolveSecret_NoRolesNoOwnership(t *testing.T) {
	svc := newResolver(storedKey("pv_abc", 1, nil), nil, nil)

	p, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.UserID != 1 {
		t.Fatalf("user id = %d, want 1", p.UserID)
	}
	if p.IsSystemAdmin {
		t.Fatalf("expected non-admin")
	}
	if len(p.AccessibleTenantIDs) != 0 {
		t.Fatalf("expected empty accessible set")
	}
}

func TestResolveSecret_OwnershipWithoutRoleRows(t *testing.T) {
	tenants := &stubTenantStore{owned: map[int64][]int64{2: {7}}}
	svc := newResolver(storedKey("pv_abc", 2, nil), nil, tenants)

	p, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !p.OwnedTenantIDs.Has(7) {
		t.Fatalf("owned set missing tenant 7")
	}
	if !p.HasTenantAccess(7) {
		t.Fatalf("owner must have tenant access")
	}
	if !p.HasWriteAccess(31, 7) {
		t.Fatalf("owner must write any shop under tenant 7")
	}
}

func TestResolveSecret_ShopViewerOnly(t *testing.T) {
	roles := &stubRoleStore{assignments: map[int64][]domain.RoleAssignment{
		3: {{UserID: 3, Role: domain.RoleViewer, ShopID: ptr(5)}},
	}}
	svc := newResolver(storedKey("pv_abc", 3, nil), roles, nil)

	p, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !p.HasReadAccess(5, 9) {
		t.Fatalf("viewer must read shop 5")
	}
	if p.HasWriteAccess(5, 9) {
		t.Fatalf("viewer must not write shop 5")
	}
	if len(p.AccessibleTenantIDs) != 0 {
		t.Fatalf("shop role must not populate accessible tenants")
	}
}

func TestResolveSecret_SystemAdmin(t *testing.T) {
	roles := &stubRoleStore{assignments: map[int64][]domain.RoleAssignment{
		4: {{UserID: 4, Role: domain.RoleSystemAdmin}},
	}}
	svc := newResolver(storedKey("pv_abc", 4, nil), roles, nil)

	p, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !p.IsSystemAdmin {
		t.Fatalf("expected system admin")
	}
	if !p.HasAdminAccess(ptr(123456)) || !p.HasWriteAccess(999, 888) {
		t.Fatalf("system admin must pass checks for never-before-seen ids")
	}
}

func TestResolveSecret_UnknownGlobalRoleIgnored(t *testing.T) {
	roles := &stubRoleStore{assignments: map[int64][]domain.RoleAssignment{
		4: {{UserID: 4, Role: "superDuperAdmin"}},
	}}
	svc := newResolver(storedKey("pv_abc", 4, nil), roles, nil)

	p, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if err != nil {
		t.Fatalf("unknown global role must not be an error: %v", err)
	}
	if p.IsSystemAdmin {
		t.Fatalf("unknown global role must not grant system admin")
	}
}

func TestResolveSecret_ExpiredKey(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	svc := newResolver(storedKey("pv_abc", 5, &past), nil, nil)

	_, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for expired key, got %v", err)
	}
}

func TestResolveSecret_UnknownSecret(t *testing.T) {
	svc := newResolver(storedKey("pv_abc", 5, nil), nil, nil)

	_, err := svc.ResolveSecret(context.Background(), "pv_wrong")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestResolveSecret_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newResolver(storedKey("pv_abc", 5, nil), &stubRoleStore{err: boom}, nil)

	_, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("store failure must not look like an invalid credential")
	}
}

func TestResolveUser_DuplicateRowsCollapse(t *testing.T) {
	roles := &stubRoleStore{assignments: map[int64][]domain.RoleAssignment{
		6: {
			{UserID: 6, Role: domain.RoleTenantAdmin, TenantID: ptr(2)},
			{UserID: 6, Role: domain.RoleTenantAdmin, TenantID: ptr(2)},
			{UserID: 6, Role: domain.RoleEditor, ShopID: ptr(5)},
			{UserID: 6, Role: domain.RoleEditor, ShopID: ptr(5), TenantID: ptr(2)},
		},
	}}
	svc := newResolver(nil, roles, nil)

	p, err := svc.ResolveUser(context.Background(), 6)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(p.TenantRoles[2]) != 1 {
		t.Fatalf("duplicate tenant rows must collapse, got %v", p.TenantRoles[2])
	}
	if len(p.ShopRoles[5]) != 1 {
		t.Fatalf("duplicate shop rows must collapse, got %v", p.ShopRoles[5])
	}
}

func TestResolveSecret_Idempotent(t *testing.T) {
	roles := &stubRoleStore{assignments: map[int64][]domain.RoleAssignment{
		8: {
			{UserID: 8, Role: domain.RoleTenantAdmin, TenantID: ptr(2)},
			{UserID: 8, Role: domain.RoleViewer, ShopID: ptr(5)},
			{UserID: 8, Role: domain.RoleEditor, ShopID: ptr(5)},
		},
	}}
	tenants := &stubTenantStore{owned: map[int64][]int64{8: {3}}}
	svc := newResolver(storedKey("pv_abc", 8, nil), roles, tenants)

	first, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := svc.ResolveSecret(context.Background(), "pv_abc")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolution not idempotent:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}
