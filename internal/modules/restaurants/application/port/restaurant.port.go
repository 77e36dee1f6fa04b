package port

import (
	"context"
	"errors"

	"lunchVote/internal/modules/restaurants/domain"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	FindByID(ctx context.Context, id uint) (*domain.Restaurant, error)
	List(ctx context.Context, query domain.ListRestaurantsQuery) ([]domain.Restaurant, error)
}
