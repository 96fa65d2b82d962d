package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockroom/internal/api/services"
	"stockroom/internal/api/ws"
	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(store repository.Store) *ActivityHandler {
	return &ActivityHandler{activityService: services.NewActivityService(store, ws.GetHub())}
}

func (h *ActivityHandler) GetActivities(c echo.Context) error {
	activities, err := h.activityService.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, activities)
}

func (h *ActivityHandler) GetActivitiesByUser(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid user id")
	}

	activities, err := h.activityService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, activities)
}

func (h *ActivityHandler) GetActivitiesByItem(c echo.Context) error {
	itemType := domain.ItemType(c.Param("item_type"))
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return ErrBadRequest(c, "invalid item id")
	}

	activities, err := h.activityService.ListByItem(c.Request().Context(), itemType, itemID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, activities)
}
