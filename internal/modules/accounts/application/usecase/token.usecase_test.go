package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lunchVote/internal/modules/accounts/domain"
	"lunchVote/internal/shared/auth"
)

func newTokenFixture(t *testing.T) (*TokenUseCase, *fakeUserRepository, *auth.JWTManager) {
	t.Helper()
	repo := &fakeUserRepository{}
	if err := repo.Create(context.Background(), &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed:password1",
		Roles:        []domain.UserRole{{Role: auth.RoleEmployee}},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	manager := auth.NewJWTManager("secret", time.Minute, time.Hour)
	return NewTokenUseCase(repo, plainHasher{}, manager, manager), repo, manager
}

func TestTokenUseCase_Login(t *testing.T) {
	t.Parallel()

	uc, _, manager := newTokenFixture(t)

	pair, err := uc.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := manager.Validate(pair.Access, auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.Username != "alice" || len(claims.Roles) != 1 || claims.Roles[0] != auth.RoleEmployee {
		t.Fatalf("unexpected claims: %#v", claims)
	}

	for _, creds := range [][2]string{{"alice", "wrong-password"}, {"nobody", "password1"}, {"", ""}} {
		if _, err := uc.Login(context.Background(), creds[0], creds[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login %v: expected invalid credentials, got %v", creds, err)
		}
	}
}

func TestTokenUseCase_RefreshRereadsRoles(t *testing.T) {
	t.Parallel()

	uc, repo, manager := newTokenFixture(t)
	pair, err := uc.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	repo.users[0].Roles = append(repo.users[0].Roles, domain.UserRole{UserID: 1, Role: auth.RoleRestaurantOwner})

	access, err := uc.Refresh(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := manager.Validate(access, auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("validate refreshed access: %v", err)
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("expected refreshed roles, got %v", claims.Roles)
	}

	if _, err := uc.Refresh(context.Background(), pair.Access); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("expected access token to be rejected as refresh, got %v", err)
	}
	if _, err := uc.Refresh(context.Background(), "garbage"); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("expected garbage to be rejected, got %v", err)
	}
}
