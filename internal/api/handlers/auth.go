package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/services"
	"stockroom/internal/repository"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(store repository.Store, jwtKey string) *AuthHandler {
	return &AuthHandler{authService: services.NewAuthService(store, jwtKey)}
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, "invalid credentials format")
	}

	user, token, err := h.authService.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SignInResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}
