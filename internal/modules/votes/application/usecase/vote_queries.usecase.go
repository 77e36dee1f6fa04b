package usecase

import (
	"context"

	"lunchVote/internal/modules/votes/application/port"
	"lunchVote/internal/modules/votes/domain"
)

type VoteQueriesUseCase struct {
	votes port.VoteRepository
}

func NewVoteQueriesUseCase(votes port.VoteRepository) *VoteQueriesUseCase {
	return &VoteQueriesUseCase{votes: votes}
}

func (uc *VoteQueriesUseCase) List(ctx context.Context) ([]domain.Vote, error) {
	return uc.votes.List(ctx)
}

func (uc *VoteQueriesUseCase) Get(ctx context.Context, id uint) (*domain.Vote, error) {
	return uc.votes.FindByID(ctx, id)
}
