package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	menuport "lunchVote/internal/modules/menus/application/port"
	"lunchVote/internal/modules/votes/application/port"
	"lunchVote/internal/modules/votes/domain"
	"lunchVote/internal/platform/database"
	"lunchVote/internal/shared/calendar"
)

type GormVoteRepository struct {
	db *gorm.DB
}

func NewGormVoteRepository(db *gorm.DB) *GormVoteRepository {
	return &GormVoteRepository{db: db}
}

func (r *GormVoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	err := database.Classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(vote).Error)
	if errors.Is(err, database.ErrConflict) {
		return fmt.Errorf("%w: %w", port.ErrDuplicateVote, err)
	}
	if err != nil {
		return fmt.Errorf("create vote: %w", err)
	}
	return nil
}

func (r *GormVoteRepository) FindByID(ctx context.Context, id uint) (*domain.Vote, error) {
	var vote domain.Vote
	err := database.Classify(r.db.WithContext(ctx).Preload("Menu.Restaurant").First(&vote, id).Error)
	if errors.Is(err, database.ErrNotFound) {
		return nil, port.ErrVoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vote: %w", err)
	}
	return &vote, nil
}

func (r *GormVoteRepository) List(ctx context.Context) ([]domain.Vote, error) {
	var votes []domain.Vote
	if err := r.db.WithContext(ctx).Preload("Menu.Restaurant").Order("id asc").Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	return votes, nil
}

func (r *GormVoteRepository) HasVoted(ctx context.Context, employeeID uint, day calendar.Day) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Vote{}).
		Where("employee_id = ? AND date = ?", employeeID, day).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count votes: %w", err)
	}
	return count > 0, nil
}

type menuCount struct {
	MenuID uint
	Votes  int64
}

// MostVotedMenu returns the menu with the most votes on day. Ties go to the lowest menu id.
func (r *GormVoteRepository) MostVotedMenu(ctx context.Context, day calendar.Day) (uint, bool, error) {
	var rows []menuCount
	err := r.db.WithContext(ctx).Model(&domain.Vote{}).
		Select("menu_id, COUNT(*) AS votes").
		Where("date = ?", day).
		Group("menu_id").
		Order("votes DESC, menu_id ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return 0, false, fmt.Errorf("tally votes: %w", err)
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].MenuID, true, nil
}

var (
	_ port.VoteRepository = (*GormVoteRepository)(nil)
	_ menuport.VoteTally  = (*GormVoteRepository)(nil)
)
