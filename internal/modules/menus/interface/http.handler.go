package transport

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"lunchVote/internal/modules/menus/application/port"
	"lunchVote/internal/modules/menus/application/usecase"
	"lunchVote/internal/modules/menus/domain"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/authz"
	"lunchVote/internal/shared/httputil"
)

type Handler struct {
	create  *usecase.CreateMenuUseCase
	queries *usecase.MenuQueriesUseCase
	errors  *httputil.ErrorMapper
}

func NewHandler(create *usecase.CreateMenuUseCase, queries *usecase.MenuQueriesUseCase) *Handler {
	return &Handler{
		create:  create,
		queries: queries,
		errors: httputil.NewErrorMapper().
			WithDetail(usecase.ErrNotRestaurantOwner, http.StatusForbidden, domain.MsgNotRestaurantOwner).
			WithDetail(port.ErrMenuNotFound, http.StatusNotFound, httputil.MsgNotFound).
			WithMapping(usecase.ErrNoMenusToday, http.StatusNotFound, httputil.Message(domain.MsgNoMenusToday)).
			WithMapping(usecase.ErrNoVotesToday, http.StatusNotFound, httputil.Message(domain.MsgNoVotesToday)),
	}
}

// VersionFrom resolves the payload version of the request.
func VersionFrom(c echo.Context) domain.Version {
	return domain.ResolveVersion(c.Request().Header.Get(domain.HeaderBuildVersion))
}

func (h *Handler) Create(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, httputil.Detail(auth.MsgNotAuthenticated))
	}
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, httputil.Detail("Malformed request body."))
	}
	version := VersionFrom(c)
	menu, err := h.create.Execute(c.Request().Context(), identity, version, fields)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, domain.Encode(version, *menu))
}

func (h *Handler) List(c echo.Context) error {
	menus, err := h.queries.List(c.Request().Context())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, domain.EncodeList(VersionFrom(c), menus))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := httputil.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, httputil.Detail(httputil.MsgNotFound))
	}
	menu, err := h.queries.Get(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, domain.Encode(VersionFrom(c), *menu))
}

// CurrentDay handles GET /menus/current-day/.
func (h *Handler) CurrentDay(c echo.Context) error {
	menus, err := h.queries.CurrentDay(c.Request().Context())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, domain.EncodeList(VersionFrom(c), menus))
}

// MostVotedToday handles GET /menus/most-voted-today/.
func (h *Handler) MostVotedToday(c echo.Context) error {
	menu, err := h.queries.MostVotedToday(c.Request().Context())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, domain.Encode(VersionFrom(c), *menu))
}

// RegisterRoutes mounts /menus/. authn must store the identity before authz runs.
func (h *Handler) RegisterRoutes(g *echo.Group, authn echo.MiddlewareFunc) {
	read := authz.Require(authz.ActionReadMenus)
	g.GET("/menus/", h.List, authn, read)
	g.POST("/menus/", h.Create, authn, authz.Require(authz.ActionCreateMenu))
	g.GET("/menus/current-day/", h.CurrentDay, authn, read)
	g.GET("/menus/most-voted-today/", h.MostVotedToday, authn, read)
	g.GET("/menus/:id/", h.Get, authn, read)
}
