package usecase

import (
	"context"
	"errors"
	"sync"

	"lunchVote/internal/modules/accounts/application/port"
	"lunchVote/internal/modules/accounts/domain"
)

type fakeUserRepository struct {
	mu       sync.Mutex
	users    []*domain.User
	createFn func(ctx context.Context, user *domain.User) error
}

func (r *fakeUserRepository) Create(ctx context.Context, user *domain.User) error {
	if r.createFn != nil {
		return r.createFn(ctx, user)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return port.ErrUserConflict
		}
	}
	user.ID = uint(len(r.users) + 1)
	for i := range user.Roles {
		user.Roles[i].UserID = user.ID
	}
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uint) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *fakeUserRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	_, err := r.find(func(u *domain.User) bool { return u.Username == username })
	return err == nil, nil
}

func (r *fakeUserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := r.find(func(u *domain.User) bool { return u.Email == email })
	return err == nil, nil
}

func (r *fakeUserRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, port.ErrUserNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}
