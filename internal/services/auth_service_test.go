package services

import (
	"errors"
	"sync"
	"testing"

	"eventhub-backend/internal/apperrors"
	"eventhub-backend/internal/authz"
	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		cp := *u
		repo.users[u.ID] = &cp
	}
	return repo
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func newTestAuthService(users *fakeUserRepo) *AuthService {
	return NewAuthService(
		&repositories.Repository{UserRepo: users},
		&config.Config{JWTSecret: "test-secret"},
	)
}

func TestSignupNormalizesEmailAndHidesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	user, err := svc.Signup("Ada", "  Ada@Example.COM ", "s3cret")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if user.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != authz.RoleUser {
		t.Fatalf("expected user role, got %q", user.Role)
	}
	if user.Password != "" {
		t.Fatal("expected password stripped from response")
	}

	stored, err := users.GetByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("stored user: %v", err)
	}
	if stored.Password == "" || stored.Password == "s3cret" {
		t.Fatal("expected a hashed password in storage")
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	if _, err := svc.Signup("Ada", "ada@example.com", "s3cret"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup("Ada Again", "ADA@example.com", "other"); !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Fatalf("expected EMAIL_ALREADY_REGISTERED, got %v", err)
	}
}

func TestAuthenticateIssuesTokenWithIdentityClaims(t *testing.T) {
	hash, err := utils.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{
		ID:       uuid.New(),
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: hash,
		Role:     authz.RoleAdmin,
	}
	svc := newTestAuthService(newFakeUserRepo(user))

	resp, err := svc.Authenticate("Ada@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if resp.User.Password != "" {
		t.Fatal("expected password stripped from response")
	}

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("expected a valid token, got %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != user.ID.String() {
		t.Fatalf("expected user_id claim %s, got %v", user.ID, claims["user_id"])
	}
	if claims["role"] != authz.RoleAdmin {
		t.Fatalf("expected admin role claim, got %v", claims["role"])
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	hash, _ := utils.HashPassword("s3cret")
	user := &models.User{ID: uuid.New(), Email: "ada@example.com", Password: hash}
	svc := newTestAuthService(newFakeUserRepo(user))

	if _, err := svc.Authenticate("ada@example.com", "wrong"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected INVALID_CREDENTIALS, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "s3cret"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected INVALID_CREDENTIALS for unknown email, got %v", err)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	if _, err := svc.GetProfile(uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
