// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	apimiddleware "noteful/internal/delivery/api/middleware"
	"noteful/internal/delivery/api/response"
	deliverycontext "noteful/internal/delivery/context"
	domainerrors "noteful/internal/domain/errors"
	"noteful/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegisterRequest is the body of POST /api/users.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler serves registration, login, refresh and the current identity.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register handles POST /api/users.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(domainerrors.ErrInvalidInput)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Fullname: req.Fullname,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, output.Location, output.User)
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		// Unreadable credentials are a bad login, not a generic input error.
		return domainerrors.ErrAuthBadRequest.WrapMessage("malformed login body")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	attachUser(c, output)

	return response.JSON(c, http.StatusOK, output)
}

// Refresh handles POST /api/refresh. The current token comes from the
// Authorization header; the body is ignored.
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := apimiddleware.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{Token: token})
	if err != nil {
		return errors.WithStack(err)
	}
	attachUser(c, output)

	return response.JSON(c, http.StatusOK, output)
}

// Me handles GET /api/users/me. It must run behind AuthMiddleware.Authenticate.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := deliverycontext.GetUser(c.Request().Context())
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthUnauthorized)
	}

	return response.JSON(c, http.StatusOK, user.Public())
}

// attachUser puts the identity a token was issued for on the request context,
// as AuthMiddleware does for protected routes.
func attachUser(c echo.Context, output *usecase.TokenOutput) {
	if output.User == nil {
		return
	}

	c.SetRequest(c.Request().WithContext(deliverycontext.WithUser(c.Request().Context(), output.User)))
}
