package usecase

import (
	"context"
	"log/slog"

	"lunchVote/internal/modules/restaurants/application/port"
	"lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/shared/auth"
)

type RestaurantsUseCase struct {
	repo port.RestaurantRepository
}

func NewRestaurantsUseCase(repo port.RestaurantRepository) *RestaurantsUseCase {
	return &RestaurantsUseCase{repo: repo}
}

// Create stores a restaurant owned by the requester.
func (uc *RestaurantsUseCase) Create(ctx context.Context, identity auth.Identity, cmd domain.CreateRestaurantCommand) (*domain.Restaurant, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}
	restaurant := &domain.Restaurant{
		OwnerID:     identity.UserID,
		Name:        cmd.Name,
		Description: cmd.Description,
	}
	if err := uc.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	slog.Info("restaurant created", slog.Uint64("restaurantId", uint64(restaurant.ID)), slog.Uint64("ownerId", uint64(identity.UserID)))
	return restaurant, nil
}

func (uc *RestaurantsUseCase) Get(ctx context.Context, id uint) (*domain.Restaurant, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *RestaurantsUseCase) List(ctx context.Context, query domain.ListRestaurantsQuery) ([]domain.Restaurant, error) {
	return uc.repo.List(ctx, query)
}
