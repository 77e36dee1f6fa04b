package port

import (
	"context"
	"errors"

	"lunchVote/internal/modules/menus/domain"
	restaurants "lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/shared/calendar"
)

var (
	ErrMenuNotFound  = errors.New("menu not found")
	ErrDuplicateMenu = errors.New("restaurant already has a menu for this day")
)

type MenuRepository interface {
	// Create returns ErrDuplicateMenu when (restaurant, date) already exists.
	Create(ctx context.Context, menu *domain.Menu) error
	FindByID(ctx context.Context, id uint) (*domain.Menu, error)
	ExistsForDay(ctx context.Context, restaurantID uint, day calendar.Day) (bool, error)
	ListByDay(ctx context.Context, day calendar.Day) ([]domain.Menu, error)
	List(ctx context.Context) ([]domain.Menu, error)
}

// RestaurantFinder resolves the restaurant a menu is created for.
type RestaurantFinder interface {
	FindByID(ctx context.Context, id uint) (*restaurants.Restaurant, error)
}

// VoteTally reports the menu with the most votes on a day. Ties resolve to the lowest menu id.
type VoteTally interface {
	MostVotedMenu(ctx context.Context, day calendar.Day) (menuID uint, found bool, err error)
}
