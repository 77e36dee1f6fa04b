package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lunchVote/internal/modules/accounts/application/port"
	"lunchVote/internal/modules/accounts/domain"
	"lunchVote/internal/platform/database"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts the user and its roles in one transaction.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles := user.Roles
		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			return err
		}
		for i := range roles {
			roles[i].UserID = user.ID
		}
		if len(roles) > 0 {
			if err := tx.Create(&roles).Error; err != nil {
				return err
			}
		}
		user.Roles = roles
		return nil
	})
	if err = database.Classify(err); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return fmt.Errorf("%w: %w", port.ErrUserConflict, err)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *GormUserRepository) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	err := database.Classify(r.db.WithContext(ctx).Preload("Roles").Where(query, args...).First(&user).Error)
	if errors.Is(err, database.ErrNotFound) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *GormUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *GormUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *GormUserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

var _ port.UserRepository = (*GormUserRepository)(nil)
