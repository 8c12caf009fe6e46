package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/planventa/planning-system/internal/core/domain"
)

type stubUserStore struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: map[string]*domain.User{}}
}

func (s *stubUserStore) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := s.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	s.nextID++
	created := *user
	created.ID = s.nextID
	s.users[created.Email] = &created
	clone := created
	return &clone, nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubUserStore) FindByID(_ context.Context, userID int64) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == userID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func TestAuthService_Register(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), "secret", time.Hour)

	user, err := svc.Register(context.Background(), "alice@example.com", "pass12345", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned user id")
	}
	if user.PasswordHash == "pass12345" {
		t.Fatalf("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass12345")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "", "pass", ""); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for empty email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.com", "", ""); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for empty password, got %v", err)
	}
}

func TestAuthService_LoginIssuesVerifiableToken(t *testing.T) {
	store := newStubUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	registered, err := svc.Register(context.Background(), "alice@example.com", "pass12345", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "pass12345")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login user id = %d, want %d", user.ID, registered.ID)
	}

	userID, err := VerifySessionToken(token, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != registered.ID {
		t.Fatalf("token subject = %d, want %d", userID, registered.ID)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), "secret", time.Hour)
	if _, err := svc.Register(context.Background(), "bob@example.com", "correct-horse", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "bob@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestAuthService_LoginUnknownUserIndistinguishable(t *testing.T) {
	svc := NewAuthService(newStubUserStore(), "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("unknown user must fail like a wrong password, got %v", err)
	}
}

func TestVerifySessionToken_Invalid(t *testing.T) {
	if _, err := VerifySessionToken("not-a-token", "secret"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	store := newStubUserStore()
	svc := NewAuthService(store, "secret", time.Hour)
	if _, err := svc.Register(context.Background(), "eve@example.com", "pass12345", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "eve@example.com", "pass12345")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := VerifySessionToken(token, "other-secret"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for wrong signing secret, got %v", err)
	}
}

func TestVerifySessionToken_Expired(t *testing.T) {
	store := newStubUserStore()
	svc := NewAuthService(store, "secret", -time.Hour) // negative TTL falls back to default
	svc.tokenTTL = -time.Hour                          // force an already-expired token
	if _, err := svc.Register(context.Background(), "old@example.com", "pass12345", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "old@example.com", "pass12345")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := VerifySessionToken(token, "secret"); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for expired token, got %v", err)
	}
}
