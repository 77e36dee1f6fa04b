package usecase

import (
	"context"
	"errors"
	"fmt"

	"lunchVote/internal/modules/menus/application/port"
	"lunchVote/internal/modules/menus/domain"
	"lunchVote/internal/shared/calendar"
)

var (
	ErrNoMenusToday = errors.New("no menus for today")
	ErrNoVotesToday = errors.New("no votes today")
)

type MenuQueriesUseCase struct {
	menus port.MenuRepository
	tally port.VoteTally
	clock calendar.Clock
}

func NewMenuQueriesUseCase(menus port.MenuRepository, tally port.VoteTally, clock calendar.Clock) *MenuQueriesUseCase {
	return &MenuQueriesUseCase{menus: menus, tally: tally, clock: clock}
}

func (uc *MenuQueriesUseCase) List(ctx context.Context) ([]domain.Menu, error) {
	return uc.menus.List(ctx)
}

func (uc *MenuQueriesUseCase) Get(ctx context.Context, id uint) (*domain.Menu, error) {
	return uc.menus.FindByID(ctx, id)
}

// CurrentDay returns today's menus or ErrNoMenusToday.
func (uc *MenuQueriesUseCase) CurrentDay(ctx context.Context) ([]domain.Menu, error) {
	menus, err := uc.menus.ListByDay(ctx, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return nil, ErrNoMenusToday
	}
	return menus, nil
}

// MostVotedToday returns the menu with the most votes today or ErrNoVotesToday.
func (uc *MenuQueriesUseCase) MostVotedToday(ctx context.Context) (*domain.Menu, error) {
	menuID, found, err := uc.tally.MostVotedMenu(ctx, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoVotesToday
	}
	menu, err := uc.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("load most voted menu %d: %w", menuID, err)
	}
	return menu, nil
}
