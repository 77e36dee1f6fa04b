package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lunchVote/internal/modules/accounts/application/port"
	"lunchVote/internal/modules/accounts/domain"
	"lunchVote/internal/shared/metrics"
	"lunchVote/internal/shared/validation"
)

type RegisterUseCase struct {
	users  port.UserRepository
	hasher port.PasswordHasher
}

func NewRegisterUseCase(users port.UserRepository, hasher port.PasswordHasher) *RegisterUseCase {
	return &RegisterUseCase{users: users, hasher: hasher}
}

// Execute creates the account with exactly one role derived from IsEmployee.
func (uc *RegisterUseCase) Execute(ctx context.Context, req domain.Registration) (*domain.User, error) {
	errs := req.Validate()
	if err := uc.checkTaken(ctx, req, errs); err != nil {
		return nil, err
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        []domain.UserRole{{Role: domain.RoleFor(*req.IsEmployee)}},
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if !errors.Is(err, port.ErrUserConflict) {
			return nil, err
		}
		metrics.Conflicts.WithLabelValues("user").Inc()
		return nil, uc.conflictErrors(ctx, req)
	}

	slog.Info("user registered", slog.Uint64("userId", uint64(user.ID)), slog.String("username", user.Username), slog.Any("roles", user.RoleNames()))
	return user, nil
}

// checkTaken adds uniqueness errors for fields that are otherwise valid.
func (uc *RegisterUseCase) checkTaken(ctx context.Context, req domain.Registration, errs validation.Errors) error {
	if _, bad := errs["username"]; !bad {
		taken, err := uc.users.UsernameExists(ctx, req.Username)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("username", domain.MsgUsernameTaken)
		}
	}
	if _, bad := errs["email"]; !bad {
		taken, err := uc.users.EmailExists(ctx, req.Email)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("email", domain.MsgEmailTaken)
		}
	}
	return nil
}

// conflictErrors turns a storage conflict into the same field errors the pre-check produces.
func (uc *RegisterUseCase) conflictErrors(ctx context.Context, req domain.Registration) error {
	errs := validation.Errors{}
	if err := uc.checkTaken(ctx, req, errs); err != nil {
		return err
	}
	if len(errs) == 0 {
		errs.Add("username", domain.MsgUsernameTaken)
	}
	return errs
}
