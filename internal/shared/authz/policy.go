package authz

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"lunchVote/internal/shared/auth"
)

// Action enumerates every operation guarded by the policy.
type Action string

const (
	ActionReadRestaurants  Action = "restaurants.read"
	ActionCreateRestaurant Action = "restaurants.create"
	ActionReadMenus        Action = "menus.read"
	ActionCreateMenu       Action = "menus.create"
	ActionReadVotes        Action = "votes.read"
	ActionCreateVote       Action = "votes.create"
	ActionSubscribe        Action = "notifications.subscribe"
)

const MsgPermissionDenied = "You do not have permission to perform this action."

// requiredRole lists the role needed for each write. Actions absent from the map only need an
// authenticated identity.
var requiredRole = map[Action]string{
	ActionCreateRestaurant: auth.RoleRestaurantOwner,
	ActionCreateMenu:       auth.RoleRestaurantOwner,
	ActionCreateVote:       auth.RoleEmployee,
}

var knownActions = map[Action]struct{}{
	ActionReadRestaurants:  {},
	ActionCreateRestaurant: {},
	ActionReadMenus:        {},
	ActionCreateMenu:       {},
	ActionReadVotes:        {},
	ActionCreateVote:       {},
	ActionSubscribe:        {},
}

// Can reports whether identity may perform action. Unknown actions are denied.
// Ownership of a specific restaurant is checked by the menu handler, not here.
func Can(identity auth.Identity, action Action) bool {
	if !identity.IsAuthenticated() {
		return false
	}
	if _, ok := knownActions[action]; !ok {
		return false
	}
	role, guarded := requiredRole[action]
	if !guarded {
		return true
	}
	return identity.HasRole(role)
}

// Require is an echo middleware running Can before the handler. It must be mounted after
// auth.Middleware.
func Require(action Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := auth.IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": auth.MsgNotAuthenticated})
			}
			if !Can(identity, action) {
				slog.Info("permission denied", slog.Uint64("userId", uint64(identity.UserID)), slog.String("action", string(action)))
				return c.JSON(http.StatusForbidden, map[string]string{"detail": MsgPermissionDenied})
			}
			return next(c)
		}
	}
}
