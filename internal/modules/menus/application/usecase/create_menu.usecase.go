package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"lunchVote/internal/modules/menus/application/port"
	"lunchVote/internal/modules/menus/domain"
	realtimeport "lunchVote/internal/modules/realtime/application/port"
	realtime "lunchVote/internal/modules/realtime/domain"
	restaurantport "lunchVote/internal/modules/restaurants/application/port"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/calendar"
	"lunchVote/internal/shared/httputil"
	"lunchVote/internal/shared/metrics"
	"lunchVote/internal/shared/validation"
)

// ErrNotRestaurantOwner is returned when the requester does not own the target restaurant.
var ErrNotRestaurantOwner = errors.New("requester does not own the restaurant")

type CreateMenuUseCase struct {
	menus       port.MenuRepository
	restaurants port.RestaurantFinder
	publisher   realtimeport.EventPublisher
	clock       calendar.Clock
}

func NewCreateMenuUseCase(menus port.MenuRepository, restaurants port.RestaurantFinder, publisher realtimeport.EventPublisher, clock calendar.Clock) *CreateMenuUseCase {
	return &CreateMenuUseCase{menus: menus, restaurants: restaurants, publisher: publisher, clock: clock}
}

// Execute validates and stores a menu dated today. The checks run in a fixed order: restaurant
// reference, ownership, content, then the one-menu-per-day rule.
func (uc *CreateMenuUseCase) Execute(ctx context.Context, identity auth.Identity, version domain.Version, fields map[string]json.RawMessage) (*domain.Menu, error) {
	payload := domain.DecodeMenuPayload(version, fields)

	restaurantID, err := uc.resolveRestaurant(ctx, payload.RestaurantID, identity)
	if err != nil {
		return nil, err
	}

	content, errs := domain.NormalizeContent(payload.Content)
	if errs != nil {
		return nil, errs
	}

	today := uc.clock.Today()
	exists, err := uc.menus.ExistsForDay(ctx, restaurantID, today)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.Conflicts.WithLabelValues("menu").Inc()
		return nil, domain.DuplicateMenuError()
	}

	menu := &domain.Menu{RestaurantID: restaurantID, Content: content, Date: today}
	if err := uc.menus.Create(ctx, menu); err != nil {
		if errors.Is(err, port.ErrDuplicateMenu) {
			metrics.Conflicts.WithLabelValues("menu").Inc()
			return nil, domain.DuplicateMenuError()
		}
		return nil, err
	}
	created, err := uc.menus.FindByID(ctx, menu.ID)
	if err != nil {
		return nil, fmt.Errorf("reload menu: %w", err)
	}

	metrics.MenusCreated.Inc()
	slog.Info("menu created",
		slog.Uint64("menuId", uint64(created.ID)),
		slog.Uint64("restaurantId", uint64(restaurantID)),
		slog.String("date", today.String()),
		slog.String("version", version.String()),
	)
	uc.publish(ctx, created)
	return created, nil
}

func (uc *CreateMenuUseCase) resolveRestaurant(ctx context.Context, raw json.RawMessage, identity auth.Identity) (uint, error) {
	var key httputil.PrimaryKey
	if raw != nil {
		if err := json.Unmarshal(raw, &key); err != nil {
			return 0, validation.Field("restaurant_id", httputil.IncorrectTypeMessage("value"))
		}
	}
	id, msg := key.Check()
	if msg != "" {
		return 0, validation.Field("restaurant_id", msg)
	}
	restaurant, err := uc.restaurants.FindByID(ctx, id)
	if errors.Is(err, restaurantport.ErrRestaurantNotFound) {
		return 0, validation.Field("restaurant_id", httputil.InvalidPKMessage(key.Raw))
	}
	if err != nil {
		return 0, err
	}
	if restaurant.OwnerID != identity.UserID {
		slog.Info("menu rejected for foreign restaurant", slog.Uint64("restaurantId", uint64(id)), slog.Uint64("userId", uint64(identity.UserID)))
		return 0, ErrNotRestaurantOwner
	}
	return id, nil
}

func (uc *CreateMenuUseCase) publish(ctx context.Context, menu *domain.Menu) {
	if uc.publisher == nil {
		return
	}
	msg := realtime.NewEntityMessage(
		realtime.MenusEntity,
		realtime.ActionCreated,
		strconv.FormatUint(uint64(menu.ID), 10),
		domain.Encode(domain.V2Plus, *menu),
		map[string]string{
			"restaurantId": strconv.FormatUint(uint64(menu.RestaurantID), 10),
			"date":         menu.Date.String(),
		},
		uc.clock.Instant(),
	)
	if err := uc.publisher.Publish(ctx, msg); err != nil {
		slog.Warn("menu event publish failed", slog.Uint64("menuId", uint64(menu.ID)), slog.Any("error", err))
	}
}
