package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/middleware"
	"stockroom/internal/api/services"
	r "stockroom/internal/redis"
	"stockroom/internal/repository"
)

type UserHandler struct {
	rdb         *goredis.Client
	userService *services.UserService
}

func NewUserHandler(store repository.Store, recorder *services.ActivityService, rdb *goredis.Client) *UserHandler {
	return &UserHandler{rdb: rdb, userService: services.NewUserService(store, recorder)}
}

func (h *UserHandler) invalidateUserCache(ctx context.Context, userID int64) {
	if h.rdb == nil {
		return
	}
	_ = r.UserCache(h.rdb).Delete(ctx, userID)
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UsersFromDomain(users))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid user id")
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserFromDomain(user))
}

func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		return ErrUnauthorized(c)
	}

	if h.rdb != nil {
		if cached, err := r.UserCache(h.rdb).Get(ctx, userID); err == nil && cached != nil {
			return c.JSON(http.StatusOK, dto.UserFromDomain(cached))
		}
	}

	user, err := h.userService.Get(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}

	if h.rdb != nil {
		_ = r.UserCache(h.rdb).Set(ctx, user)
	}
	return c.JSON(http.StatusOK, dto.UserFromDomain(user))
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	if !middleware.IsAdminFromContext(c.Request().Context()) {
		return ErrForbidden(c)
	}

	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	actorID := actorFromContext(c)
	user, err := h.userService.Create(c.Request().Context(), services.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		IsAdmin:    req.IsAdmin,
	}, actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserFromDomain(user))
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	if !middleware.IsAdminFromContext(c.Request().Context()) {
		return ErrForbidden(c)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	actorID := actorFromContext(c)
	user, err := h.userService.Update(c.Request().Context(), id, services.UpdateUserInput{
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		IsAdmin:    req.IsAdmin,
	}, actorID)
	if err != nil {
		return serviceError(c, err)
	}

	h.invalidateUserCache(c.Request().Context(), id)
	return c.JSON(http.StatusOK, dto.UserFromDomain(user))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	if !middleware.IsAdminFromContext(c.Request().Context()) {
		return ErrForbidden(c)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid user id")
	}

	actorID := actorFromContext(c)
	if err := h.userService.Delete(c.Request().Context(), id, actorID); err != nil {
		return serviceError(c, err)
	}

	h.invalidateUserCache(c.Request().Context(), id)
	return SuccessResponse(c, "user deleted")
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// actorFromContext resolves the acting user for audit attribution, nil when
// the request is unauthenticated.
func actorFromContext(c echo.Context) *int64 {
	userID, err := middleware.GetUserIDFromContext(c.Request().Context())
	if err != nil {
		return nil
	}
	return &userID
}
