package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lunchVote/internal/modules/menus/application/port"
	"lunchVote/internal/modules/menus/domain"
	"lunchVote/internal/platform/database"
	"lunchVote/internal/shared/calendar"
)

type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	err := database.Classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(menu).Error)
	if errors.Is(err, database.ErrConflict) {
		return fmt.Errorf("%w: %w", port.ErrDuplicateMenu, err)
	}
	if err != nil {
		return fmt.Errorf("create menu: %w", err)
	}
	return nil
}

func (r *GormMenuRepository) FindByID(ctx context.Context, id uint) (*domain.Menu, error) {
	var menu domain.Menu
	err := database.Classify(r.db.WithContext(ctx).Preload("Restaurant").First(&menu, id).Error)
	if errors.Is(err, database.ErrNotFound) {
		return nil, port.ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find menu: %w", err)
	}
	return &menu, nil
}

func (r *GormMenuRepository) ExistsForDay(ctx context.Context, restaurantID uint, day calendar.Day) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Menu{}).
		Where("restaurant_id = ? AND date = ?", restaurantID, day).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count menus: %w", err)
	}
	return count > 0, nil
}

func (r *GormMenuRepository) ListByDay(ctx context.Context, day calendar.Day) ([]domain.Menu, error) {
	var menus []domain.Menu
	if err := r.db.WithContext(ctx).Preload("Restaurant").Where("date = ?", day).Order("id asc").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("list menus by day: %w", err)
	}
	return menus, nil
}

func (r *GormMenuRepository) List(ctx context.Context) ([]domain.Menu, error) {
	var menus []domain.Menu
	if err := r.db.WithContext(ctx).Preload("Restaurant").Order("id asc").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return menus, nil
}

var _ port.MenuRepository = (*GormMenuRepository)(nil)
