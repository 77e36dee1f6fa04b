package usecase

import (
	"context"
	"sync"

	menuport "lunchVote/internal/modules/menus/application/port"
	menus "lunchVote/internal/modules/menus/domain"
	realtime "lunchVote/internal/modules/realtime/domain"
	"lunchVote/internal/modules/votes/application/port"
	"lunchVote/internal/modules/votes/domain"
	"lunchVote/internal/shared/calendar"
)

type fakeVoteRepository struct {
	mu    sync.Mutex
	votes []domain.Vote
	// skipPrecheck makes HasVoted report false so Create sees the conflict.
	skipPrecheck bool
}

func (r *fakeVoteRepository) Create(_ context.Context, vote *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes {
		if v.EmployeeID == vote.EmployeeID && v.Date == vote.Date {
			return port.ErrDuplicateVote
		}
	}
	vote.ID = uint(len(r.votes) + 1)
	r.votes = append(r.votes, *vote)
	return nil
}

func (r *fakeVoteRepository) FindByID(_ context.Context, id uint) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes {
		if v.ID == id {
			found := v
			return &found, nil
		}
	}
	return nil, port.ErrVoteNotFound
}

func (r *fakeVoteRepository) List(context.Context) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Vote(nil), r.votes...), nil
}

func (r *fakeVoteRepository) HasVoted(_ context.Context, employeeID uint, day calendar.Day) (bool, error) {
	if r.skipPrecheck {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes {
		if v.EmployeeID == employeeID && v.Date == day {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVoteRepository) MostVotedMenu(context.Context, calendar.Day) (uint, bool, error) {
	return 0, false, nil
}

type fakeMenuFinder map[uint]menus.Menu

func (f fakeMenuFinder) FindByID(_ context.Context, id uint) (*menus.Menu, error) {
	m, ok := f[id]
	if !ok {
		return nil, menuport.ErrMenuNotFound
	}
	return &m, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []*realtime.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg *realtime.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}
