package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lunchVote/internal/modules/accounts/application/port"
	"lunchVote/internal/shared/auth"
)

var (
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidRefresh     = errors.New("refresh token is invalid or expired")
)

type TokenUseCase struct {
	users     port.UserRepository
	hasher    port.PasswordHasher
	issuer    auth.TokenIssuer
	validator auth.TokenValidator
}

func NewTokenUseCase(users port.UserRepository, hasher port.PasswordHasher, issuer auth.TokenIssuer, validator auth.TokenValidator) *TokenUseCase {
	return &TokenUseCase{users: users, hasher: hasher, issuer: issuer, validator: validator}
}

// Login checks the credentials and issues an access/refresh pair.
func (uc *TokenUseCase) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	if username == "" || password == "" {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	user, err := uc.users.FindByUsername(ctx, username)
	if errors.Is(err, port.ErrUserNotFound) {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenPair{}, err
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		slog.Info("login rejected", slog.String("username", username))
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	pair, err := uc.issuer.Issue(user.Identity())
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a new access token. Roles are re-read so grants
// take effect without a new login.
func (uc *TokenUseCase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := uc.validator.Validate(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}
	user, err := uc.users.FindByID(ctx, userID)
	if errors.Is(err, port.ErrUserNotFound) {
		return "", ErrInvalidRefresh
	}
	if err != nil {
		return "", err
	}
	access, err := uc.issuer.IssueAccess(user.Identity())
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}
