package transport

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	menutransport "lunchVote/internal/modules/menus/interface"
	"lunchVote/internal/modules/votes/application/port"
	"lunchVote/internal/modules/votes/application/usecase"
	"lunchVote/internal/modules/votes/domain"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/authz"
	"lunchVote/internal/shared/httputil"
)

type Handler struct {
	cast    *usecase.CastVoteUseCase
	queries *usecase.VoteQueriesUseCase
	errors  *httputil.ErrorMapper
}

func NewHandler(cast *usecase.CastVoteUseCase, queries *usecase.VoteQueriesUseCase) *Handler {
	return &Handler{
		cast:    cast,
		queries: queries,
		errors: httputil.NewErrorMapper().
			WithDetail(port.ErrVoteNotFound, http.StatusNotFound, httputil.MsgNotFound),
	}
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
	vote, err := h.cast.Execute(c.Request().Context(), identity, fields)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, domain.Encode(menutransport.VersionFrom(c), *vote))
}

func (h *Handler) List(c echo.Context) error {
	votes, err := h.queries.List(c.Request().Context())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, domain.EncodeList(menutransport.VersionFrom(c), votes))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := httputil.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, httputil.Detail(httputil.MsgNotFound))
	}
	vote, err := h.queries.Get(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, domain.Encode(menutransport.VersionFrom(c), *vote))
}

// RegisterRoutes mounts /votes/. authn must store the identity before authz runs.
func (h *Handler) RegisterRoutes(g *echo.Group, authn echo.MiddlewareFunc) {
	read := authz.Require(authz.ActionReadVotes)
	g.GET("/votes/", h.List, authn, read)
	g.POST("/votes/", h.Create, authn, authz.Require(authz.ActionCreateVote))
	g.GET("/votes/:id/", h.Get, authn, read)
}
