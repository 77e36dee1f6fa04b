package infrastructure

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	accounts "lunchVote/internal/modules/accounts/domain"
	"lunchVote/internal/modules/menus/application/port"
	"lunchVote/internal/modules/menus/domain"
	restaurants "lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/platform/database/dbtest"
	"lunchVote/internal/shared/calendar"
)

func seed(t *testing.T) (*gorm.DB, restaurants.Restaurant) {
	t.Helper()
	db := dbtest.Open(t, &accounts.User{}, &accounts.UserRole{}, &restaurants.Restaurant{}, &domain.Menu{})
	owner := accounts.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	restaurant := restaurants.Restaurant{OwnerID: owner.ID, Name: "Trattoria", Description: "Italian"}
	if err := db.Omit("Owner").Create(&restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return db, restaurant
}

func TestGormMenuRepository_UniquePerRestaurantAndDay(t *testing.T) {
	db, restaurant := seed(t)
	repo := NewGormMenuRepository(db)
	ctx := context.Background()
	day := calendar.Day{Year: 2026, Month: 10, Date: 18}

	menu := &domain.Menu{RestaurantID: restaurant.ID, Content: `{"main":"Pizza"}`, Date: day}
	if err := repo.Create(ctx, menu); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(ctx, &domain.Menu{RestaurantID: restaurant.ID, Content: `{}`, Date: day})
	if !errors.Is(err, port.ErrDuplicateMenu) {
		t.Fatalf("expected duplicate menu, got %v", err)
	}

	next := calendar.Day{Year: 2026, Month: 10, Date: 19}
	if err := repo.Create(ctx, &domain.Menu{RestaurantID: restaurant.ID, Content: `{}`, Date: next}); err != nil {
		t.Fatalf("next day create: %v", err)
	}

	exists, err := repo.ExistsForDay(ctx, restaurant.ID, day)
	if err != nil || !exists {
		t.Fatalf("expected menu to exist: %v %v", exists, err)
	}

	found, err := repo.FindByID(ctx, menu.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Restaurant.Name != "Trattoria" || found.Date != day {
		t.Fatalf("unexpected menu: %+v", found)
	}

	byDay, err := repo.ListByDay(ctx, day)
	if err != nil || len(byDay) != 1 || byDay[0].ID != menu.ID {
		t.Fatalf("unexpected day listing: %+v %v", byDay, err)
	}

	all, err := repo.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("unexpected listing: %+v %v", all, err)
	}

	if _, err := repo.FindByID(ctx, 999); !errors.Is(err, port.ErrMenuNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGormMenuRepository_ConcurrentCreatesOnlyOneWins(t *testing.T) {
	db, restaurant := seed(t)
	repo := NewGormMenuRepository(db)
	day := calendar.Day{Year: 2026, Month: 10, Date: 18}

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(context.Background(), &domain.Menu{RestaurantID: restaurant.ID, Content: `{}`, Date: day})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, port.ErrDuplicateMenu):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != workers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", workers-1, succeeded, conflicts)
	}
}
