package infrastructure

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"lunchVote/internal/modules/accounts/application/port"
	"lunchVote/internal/modules/accounts/domain"
	"lunchVote/internal/platform/database/dbtest"
	"lunchVote/internal/shared/auth"
)

func TestGormUserRepository(t *testing.T) {
	db := dbtest.Open(t, &domain.User{}, &domain.UserRole{})
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Roles:        []domain.UserRole{{Role: auth.RoleEmployee}, {Role: auth.RoleRestaurantOwner}},
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	found, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	identity := found.Identity()
	if !identity.HasRole(auth.RoleEmployee) || !identity.HasRole(auth.RoleRestaurantOwner) {
		t.Fatalf("expected both roles, got %v", identity.Roles)
	}

	if _, err := repo.FindByID(ctx, 999); !errors.Is(err, port.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	dup := &domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, dup); !errors.Is(err, port.ErrUserConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	taken, err := repo.EmailExists(ctx, "alice@example.com")
	if err != nil || !taken {
		t.Fatalf("expected email taken, got %v %v", taken, err)
	}
	free, err := repo.UsernameExists(ctx, "bob")
	if err != nil || free {
		t.Fatalf("expected username free, got %v %v", free, err)
	}
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("password1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := hasher.Compare(hash, "password1"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "password2"); err == nil {
		t.Fatal("expected mismatch")
	}
	if NewBcryptHasher(100).cost != bcrypt.DefaultCost {
		t.Fatal("expected default cost for out of range input")
	}
}
