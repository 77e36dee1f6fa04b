package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lunchVote/internal/modules/restaurants/application/port"
	"lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/platform/database"
)

type GormRestaurantRepository struct {
	db *gorm.DB
}

func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

func (r *GormRestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(restaurant).Error; err != nil {
		return fmt.Errorf("create restaurant: %w", database.Classify(err))
	}
	return nil
}

func (r *GormRestaurantRepository) FindByID(ctx context.Context, id uint) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := database.Classify(r.db.WithContext(ctx).First(&restaurant, id).Error)
	if errors.Is(err, database.ErrNotFound) {
		return nil, port.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &restaurant, nil
}

func (r *GormRestaurantRepository) List(ctx context.Context, query domain.ListRestaurantsQuery) ([]domain.Restaurant, error) {
	tx := r.db.WithContext(ctx).Order("id asc")
	if search := strings.TrimSpace(query.Search); search != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var restaurants []domain.Restaurant
	if err := tx.Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

var _ port.RestaurantRepository = (*GormRestaurantRepository)(nil)
