package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"lunchVote/internal/modules/accounts/application/usecase"
	"lunchVote/internal/modules/accounts/domain"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/httputil"
)

const (
	msgInvalidCredentials = "No active account found with the given credentials"
	msgInvalidRefresh     = "Token is invalid or expired"
	msgMalformedBody      = "Malformed request body."
)

type Handler struct {
	register *usecase.RegisterUseCase
	tokens   *usecase.TokenUseCase
	errors   *httputil.ErrorMapper
}

func NewHandler(register *usecase.RegisterUseCase, tokens *usecase.TokenUseCase) *Handler {
	return &Handler{
		register: register,
		tokens:   tokens,
		errors: httputil.NewErrorMapper().
			WithDetail(usecase.ErrInvalidCredentials, http.StatusUnauthorized, msgInvalidCredentials).
			WithMapping(usecase.ErrInvalidRefresh, http.StatusUnauthorized, map[string]string{
				"detail": msgInvalidRefresh,
				"code":   auth.CodeTokenNotValid,
			}),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type registerResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Register handles POST /register/.
func (h *Handler) Register(c echo.Context) error {
	var req domain.Registration
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httputil.Detail(msgMalformedBody))
	}
	user, err := h.register.Execute(c.Request().Context(), req)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, registerResponse{ID: user.ID, Username: user.Username})
}

// Login handles POST /auth/login/.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httputil.Detail(msgMalformedBody))
	}
	if errs := requireFields(map[string]string{"username": req.Username, "password": req.Password}); errs != nil {
		return h.errors.Respond(c, errs)
	}
	pair, err := h.tokens.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	slog.Info("user logged in", slog.String("username", req.Username))
	return c.JSON(http.StatusOK, pair)
}

// Refresh handles POST /auth/refresh/.
func (h *Handler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httputil.Detail(msgMalformedBody))
	}
	if errs := requireFields(map[string]string{"refresh": req.Refresh}); errs != nil {
		return h.errors.Respond(c, errs)
	}
	access, err := h.tokens.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"access": access})
}

// RegisterRoutes mounts the public account endpoints. guard wraps every route (rate limiting).
func (h *Handler) RegisterRoutes(e *echo.Echo, guard ...echo.MiddlewareFunc) {
	e.POST("/register/", h.Register, guard...)
	e.POST("/auth/login/", h.Login, guard...)
	e.POST("/auth/refresh/", h.Refresh, guard...)
}
