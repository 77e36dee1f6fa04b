package port

import (
	"context"
	"errors"

	menus "lunchVote/internal/modules/menus/domain"
	"lunchVote/internal/modules/votes/domain"
	"lunchVote/internal/shared/calendar"
)

var (
	ErrVoteNotFound  = errors.New("vote not found")
	ErrDuplicateVote = errors.New("employee already voted on this day")
)

type VoteRepository interface {
	// Create returns ErrDuplicateVote when the employee already has a vote on the vote's date.
	Create(ctx context.Context, vote *domain.Vote) error
	FindByID(ctx context.Context, id uint) (*domain.Vote, error)
	List(ctx context.Context) ([]domain.Vote, error)
	HasVoted(ctx context.Context, employeeID uint, day calendar.Day) (bool, error)
	MostVotedMenu(ctx context.Context, day calendar.Day) (uint, bool, error)
}

// MenuFinder resolves the menu a vote is cast for.
type MenuFinder interface {
	FindByID(ctx context.Context, id uint) (*menus.Menu, error)
}
