package usecase

import (
	"context"
	"sync"

	"lunchVote/internal/modules/menus/application/port"
	"lunchVote/internal/modules/menus/domain"
	realtime "lunchVote/internal/modules/realtime/domain"
	restaurantport "lunchVote/internal/modules/restaurants/application/port"
	restaurants "lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/shared/calendar"
)

type fakeMenuRepository struct {
	mu       sync.Mutex
	menus    []domain.Menu
	rest     map[uint]restaurants.Restaurant
	createFn func(menu *domain.Menu) error
}

func (r *fakeMenuRepository) Create(_ context.Context, menu *domain.Menu) error {
	if r.createFn != nil {
		if err := r.createFn(menu); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.menus {
		if m.RestaurantID == menu.RestaurantID && m.Date == menu.Date {
			return port.ErrDuplicateMenu
		}
	}
	menu.ID = uint(len(r.menus) + 1)
	menu.Restaurant = r.rest[menu.RestaurantID]
	r.menus = append(r.menus, *menu)
	return nil
}

func (r *fakeMenuRepository) FindByID(_ context.Context, id uint) (*domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.menus {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, port.ErrMenuNotFound
}

func (r *fakeMenuRepository) ExistsForDay(_ context.Context, restaurantID uint, day calendar.Day) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.menus {
		if m.RestaurantID == restaurantID && m.Date == day {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMenuRepository) ListByDay(_ context.Context, day calendar.Day) ([]domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Menu
	for _, m := range r.menus {
		if m.Date == day {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMenuRepository) List(context.Context) ([]domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Menu(nil), r.menus...), nil
}

type fakeRestaurantFinder map[uint]restaurants.Restaurant

func (f fakeRestaurantFinder) FindByID(_ context.Context, id uint) (*restaurants.Restaurant, error) {
	r, ok := f[id]
	if !ok {
		return nil, restaurantport.ErrRestaurantNotFound
	}
	return &r, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []*realtime.Message
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, msg *realtime.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return p.err
}

type tallyFunc func(ctx context.Context, day calendar.Day) (uint, bool, error)

func (f tallyFunc) MostVotedMenu(ctx context.Context, day calendar.Day) (uint, bool, error) {
	return f(ctx, day)
}
