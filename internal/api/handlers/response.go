package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"stockroom/internal/api/services"
	"stockroom/internal/quantity"
	"stockroom/internal/repository"
)

func ErrUnauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

func ErrForbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
}

func ErrNotFound(c echo.Context, message string) error {
	if message == "" {
		message = "not found"
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": message})
}

func ErrBadRequest(c echo.Context, message string) error {
	if message == "" {
		message = "invalid request"
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func ErrConflict(c echo.Context, message string) error {
	if message == "" {
		message = "conflict"
	}
	return c.JSON(http.StatusConflict, map[string]string{"error": message})
}

func ErrInternalServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func SuccessResponse(c echo.Context, message string) error {
	if message == "" {
		message = "ok"
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// serviceError maps service and repository sentinels to HTTP responses.
// Unknown errors become a 500 without leaking internals.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrNotFound(c, "user not found")
	case errors.Is(err, repository.ErrAssetNotFound):
		return ErrNotFound(c, "asset not found")
	case errors.Is(err, repository.ErrResourceNotFound):
		return ErrNotFound(c, "resource not found")
	case errors.Is(err, repository.ErrAssignmentNotFound):
		return ErrNotFound(c, "assignment not found")
	case errors.Is(err, repository.ErrAssetTagExists):
		return ErrConflict(c, "asset tag already in use")
	case errors.Is(err, repository.ErrUserExists), errors.Is(err, services.ErrUserAlreadyExists):
		return ErrConflict(c, "user already exists")
	case errors.Is(err, quantity.ErrInvalidQuantity):
		return ErrBadRequest(c, "invalid quantity")
	case errors.Is(err, quantity.ErrInsufficientQuantity):
		return ErrConflict(c, "insufficient quantity available")
	case errors.Is(err, quantity.ErrConservation):
		// conservation failures are ledger corruption, never caller input
		log.Printf("conservation invariant violated on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return ErrInternalServerError(c)
	case errors.Is(err, services.ErrAssetNotAvailable):
		return ErrConflict(c, "asset is not available")
	case errors.Is(err, services.ErrAssetNotDeployed):
		return ErrConflict(c, "asset is not checked out")
	case errors.Is(err, services.ErrAssetDeployed):
		return ErrConflict(c, "asset is currently checked out")
	case errors.Is(err, services.ErrAssignmentReturned):
		return ErrConflict(c, "assignment already returned")
	case errors.Is(err, services.ErrHasActiveAssignments):
		return ErrConflict(c, "resource has active assignments")
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidKind):
		return ErrBadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return ErrUnauthorized(c)
	default:
		return ErrInternalServerError(c)
	}
}
