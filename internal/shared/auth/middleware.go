package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const identityContextKey = "auth.identity"

const (
	MsgNotAuthenticated = "Authentication credentials were not provided."
	MsgTokenNotValid    = "Given token not valid for any token type"
	CodeTokenNotValid   = "token_not_valid"
)

// Middleware rejects requests without a valid access token and stores the Identity in the echo context.
func Middleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractBearerToken(c.Request())
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": MsgNotAuthenticated})
			}
			claims, err := validator.Validate(token, TokenTypeAccess)
			if err != nil {
				slog.Debug("bearer token rejected", slog.String("path", c.Path()), slog.Any("error", err))
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": MsgTokenNotValid, "code": CodeTokenNotValid})
			}
			identity, err := claims.Identity()
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": MsgTokenNotValid, "code": CodeTokenNotValid})
			}
			SetIdentity(c, identity)
			return next(c)
		}
	}
}

func SetIdentity(c echo.Context, identity Identity) {
	c.Set(identityContextKey, identity)
}

// IdentityFrom returns the identity stored by Middleware.
func IdentityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityContextKey).(Identity)
	return identity, ok && identity.IsAuthenticated()
}

// ErrUnauthenticated is returned by handlers reached without an identity.
var ErrUnauthenticated = errors.New("unauthenticated")
