package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken   = errors.New("missing token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// TokenType distinguishes short lived access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

type Claims struct {
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, c.Subject)
	}
	return uint(id), nil
}

// Identity returns the authenticated principal described by the claims.
func (c *Claims) Identity() (Identity, error) {
	id, err := c.UserID()
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: id, Username: c.Username, Roles: append([]string(nil), c.Roles...)}, nil
}

type TokenValidator interface {
	Validate(token string, want TokenType) (*Claims, error)
}

type TokenIssuer interface {
	Issue(identity Identity) (TokenPair, error)
	IssueAccess(identity Identity) (string, error)
}

// TokenPair is returned by the login endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// JWTManager signs and validates HS256 tokens with a shared secret.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	if accessTTL <= 0 {
		accessTTL = 5 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &JWTManager{
		secret:     []byte(strings.TrimSpace(secret)),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *JWTManager) Issue(identity Identity) (TokenPair, error) {
	access, err := m.sign(identity, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.sign(identity, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *JWTManager) IssueAccess(identity Identity) (string, error) {
	return m.sign(identity, TokenTypeAccess, m.accessTTL)
}

func (m *JWTManager) sign(identity Identity, typ TokenType, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("%w: jwt secret not configured", ErrInvalidToken)
	}
	if identity.UserID == 0 {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	now := m.now()
	claims := Claims{
		Username:  identity.Username,
		Roles:     identity.Roles,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(identity.UserID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (m *JWTManager) Validate(token string, want TokenType) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if len(m.secret) == 0 {
		return nil, fmt.Errorf("%w: jwt secret not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsedToken.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if want != "" && claims.TokenType != want {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.TokenType, want)
	}
	return claims, nil
}

var (
	_ TokenValidator = (*JWTManager)(nil)
	_ TokenIssuer    = (*JWTManager)(nil)
)
