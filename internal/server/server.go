package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	accountsusecase "lunchVote/internal/modules/accounts/application/usecase"
	accounts "lunchVote/internal/modules/accounts/domain"
	accountsinfra "lunchVote/internal/modules/accounts/infrastructure"
	accountstransport "lunchVote/internal/modules/accounts/interface"
	menususecase "lunchVote/internal/modules/menus/application/usecase"
	menus "lunchVote/internal/modules/menus/domain"
	menusinfra "lunchVote/internal/modules/menus/infrastructure"
	menustransport "lunchVote/internal/modules/menus/interface"
	realtimeport "lunchVote/internal/modules/realtime/application/port"
	realtimeinfra "lunchVote/internal/modules/realtime/infrastructure"
	realtimetransport "lunchVote/internal/modules/realtime/interface"
	restaurantsusecase "lunchVote/internal/modules/restaurants/application/usecase"
	restaurants "lunchVote/internal/modules/restaurants/domain"
	restaurantsinfra "lunchVote/internal/modules/restaurants/infrastructure"
	restaurantstransport "lunchVote/internal/modules/restaurants/interface"
	votesusecase "lunchVote/internal/modules/votes/application/usecase"
	votes "lunchVote/internal/modules/votes/domain"
	votesinfra "lunchVote/internal/modules/votes/infrastructure"
	votestransport "lunchVote/internal/modules/votes/interface"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/calendar"
	"lunchVote/internal/shared/httputil"
	"lunchVote/internal/shared/logging"
	"lunchVote/internal/shared/metrics"
	"lunchVote/internal/shared/middleware"
)

// Deps carries the collaborators built by main.
type Deps struct {
	DB         *gorm.DB
	Tokens     *auth.JWTManager
	Clock      calendar.Clock
	Publisher  realtimeport.EventPublisher
	Hub        *realtimeinfra.Hub
	Logger     *slog.Logger
	BcryptCost int
	// AuthLimiter throttles the public account endpoints. Nil disables throttling.
	AuthLimiter *middleware.RateLimiter
	WSBuffer    int
}

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&accounts.User{},
		&accounts.UserRole{},
		&restaurants.Restaurant{},
		&menus.Menu{},
		&votes.Vote{},
	}
}

// New builds the HTTP router with every module mounted.
func New(deps Deps) *echo.Echo {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httputil.HTTPErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.RequestLogger(logger))
	e.Use(metrics.Middleware())

	e.GET("/health", health(deps.DB))
	e.GET("/metrics", metrics.Handler())

	users := accountsinfra.NewGormUserRepository(deps.DB)
	hasher := accountsinfra.NewBcryptHasher(deps.BcryptCost)
	var guard []echo.MiddlewareFunc
	if deps.AuthLimiter != nil {
		guard = append(guard, deps.AuthLimiter.Middleware())
	}
	accountstransport.NewHandler(
		accountsusecase.NewRegisterUseCase(users, hasher),
		accountsusecase.NewTokenUseCase(users, hasher, deps.Tokens, deps.Tokens),
	).RegisterRoutes(e, guard...)

	api := e.Group("")
	authn := auth.Middleware(deps.Tokens)

	restaurantRepo := restaurantsinfra.NewGormRestaurantRepository(deps.DB)
	restaurantstransport.NewHandler(restaurantsusecase.NewRestaurantsUseCase(restaurantRepo)).RegisterRoutes(api, authn)

	menuRepo := menusinfra.NewGormMenuRepository(deps.DB)
	voteRepo := votesinfra.NewGormVoteRepository(deps.DB)
	menustransport.NewHandler(
		menususecase.NewCreateMenuUseCase(menuRepo, restaurantRepo, deps.Publisher, deps.Clock),
		menususecase.NewMenuQueriesUseCase(menuRepo, voteRepo, deps.Clock),
	).RegisterRoutes(api, authn)

	votestransport.NewHandler(
		votesusecase.NewCastVoteUseCase(voteRepo, menuRepo, deps.Publisher, deps.Clock),
		votesusecase.NewVoteQueriesUseCase(voteRepo),
	).RegisterRoutes(api, authn)

	if deps.Hub != nil {
		e.GET("/ws/notifications", realtimetransport.NewNotificationsWebsocketHandler(deps.Hub, deps.Tokens, deps.WSBuffer))
	}
	return e
}

func health(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			slog.Warn("health check failed", slog.Any("error", err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
