package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lunchVote/internal/modules/restaurants/application/port"
	"lunchVote/internal/modules/restaurants/application/usecase"
	"lunchVote/internal/modules/restaurants/domain"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/authz"
	"lunchVote/internal/shared/httputil"
)

type Handler struct {
	uc     *usecase.RestaurantsUseCase
	errors *httputil.ErrorMapper
}

func NewHandler(uc *usecase.RestaurantsUseCase) *Handler {
	return &Handler{
		uc:     uc,
		errors: httputil.NewErrorMapper().WithDetail(port.ErrRestaurantNotFound, http.StatusNotFound, httputil.MsgNotFound),
	}
}

func (h *Handler) Create(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, httputil.Detail(auth.MsgNotAuthenticated))
	}
	var cmd domain.CreateRestaurantCommand
	if err := c.Bind(&cmd); err != nil {
		return c.JSON(http.StatusBadRequest, httputil.Detail("Malformed request body."))
	}
	restaurant, err := h.uc.Create(c.Request().Context(), identity, cmd)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, restaurant.Representation())
}

func (h *Handler) List(c echo.Context) error {
	query := domain.ListRestaurantsQuery{Search: c.QueryParam("search")}
	restaurants, err := h.uc.List(c.Request().Context(), query)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	out := make([]domain.Representation, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.Representation())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := httputil.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, httputil.Detail(httputil.MsgNotFound))
	}
	restaurant, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, restaurant.Representation())
}

// RegisterRoutes mounts /restaurants/. authn must store the identity before authz runs.
func (h *Handler) RegisterRoutes(g *echo.Group, authn echo.MiddlewareFunc) {
	read := authz.Require(authz.ActionReadRestaurants)
	g.GET("/restaurants/", h.List, authn, read)
	g.POST("/restaurants/", h.Create, authn, authz.Require(authz.ActionCreateRestaurant))
	g.GET("/restaurants/:id/", h.Get, authn, read)
}
