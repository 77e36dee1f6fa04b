package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	menuport "lunchVote/internal/modules/menus/application/port"
	menus "lunchVote/internal/modules/menus/domain"
	realtimeport "lunchVote/internal/modules/realtime/application/port"
	realtime "lunchVote/internal/modules/realtime/domain"
	"lunchVote/internal/modules/votes/application/port"
	"lunchVote/internal/modules/votes/domain"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/calendar"
	"lunchVote/internal/shared/httputil"
	"lunchVote/internal/shared/metrics"
	"lunchVote/internal/shared/validation"
)

type CastVoteUseCase struct {
	votes     port.VoteRepository
	menus     port.MenuFinder
	publisher realtimeport.EventPublisher
	clock     calendar.Clock
}

func NewCastVoteUseCase(votes port.VoteRepository, menus port.MenuFinder, publisher realtimeport.EventPublisher, clock calendar.Clock) *CastVoteUseCase {
	return &CastVoteUseCase{votes: votes, menus: menus, publisher: publisher, clock: clock}
}

// Execute records the requester's vote for today. An employee gets one vote per day.
func (uc *CastVoteUseCase) Execute(ctx context.Context, identity auth.Identity, fields map[string]json.RawMessage) (*domain.Vote, error) {
	menu, err := uc.resolveMenu(ctx, fields["menu_id"])
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	voted, err := uc.votes.HasVoted(ctx, identity.UserID, today)
	if err != nil {
		return nil, err
	}
	if voted {
		metrics.Conflicts.WithLabelValues("vote").Inc()
		return nil, domain.DuplicateVoteError()
	}

	vote := &domain.Vote{EmployeeID: identity.UserID, MenuID: menu.ID, Date: today}
	if err := uc.votes.Create(ctx, vote); err != nil {
		if errors.Is(err, port.ErrDuplicateVote) {
			metrics.Conflicts.WithLabelValues("vote").Inc()
			return nil, domain.DuplicateVoteError()
		}
		return nil, err
	}
	vote.Menu = *menu

	metrics.VotesCast.Inc()
	slog.Info("vote cast",
		slog.Uint64("voteId", uint64(vote.ID)),
		slog.Uint64("menuId", uint64(menu.ID)),
		slog.Uint64("employeeId", uint64(identity.UserID)),
		slog.String("date", today.String()),
	)
	uc.publish(ctx, vote)
	return vote, nil
}

func (uc *CastVoteUseCase) resolveMenu(ctx context.Context, raw json.RawMessage) (*menus.Menu, error) {
	var key httputil.PrimaryKey
	if raw != nil {
		if err := json.Unmarshal(raw, &key); err != nil {
			return nil, validation.Field("menu_id", httputil.IncorrectTypeMessage("value"))
		}
	}
	id, msg := key.Check()
	if msg != "" {
		return nil, validation.Field("menu_id", msg)
	}
	menu, err := uc.menus.FindByID(ctx, id)
	if errors.Is(err, menuport.ErrMenuNotFound) {
		return nil, validation.Field("menu_id", httputil.InvalidPKMessage(key.Raw))
	}
	if err != nil {
		return nil, fmt.Errorf("load menu %d: %w", id, err)
	}
	return menu, nil
}

func (uc *CastVoteUseCase) publish(ctx context.Context, vote *domain.Vote) {
	if uc.publisher == nil {
		return
	}
	msg := realtime.NewEntityMessage(
		realtime.VotesEntity,
		realtime.ActionCreated,
		strconv.FormatUint(uint64(vote.ID), 10),
		domain.Encode(menus.V2Plus, *vote),
		map[string]string{
			"menuId": strconv.FormatUint(uint64(vote.MenuID), 10),
			"date":   vote.Date.String(),
		},
		uc.clock.Instant(),
	)
	if err := uc.publisher.Publish(ctx, msg); err != nil {
		slog.Warn("vote event publish failed", slog.Uint64("voteId", uint64(vote.ID)), slog.Any("error", err))
	}
}
