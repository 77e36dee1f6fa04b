package port

import (
	"context"
	"errors"

	"lunchVote/internal/modules/accounts/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrUserConflict reports that the username or email was claimed concurrently.
	ErrUserConflict = errors.New("username or email already registered")
)

// UserRepository persists accounts and their roles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
