package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockroom/internal/repository"
)

type StatusHandler struct {
	store repository.Store
}

func NewStatusHandler(store repository.Store) *StatusHandler {
	return &StatusHandler{store: store}
}

// GetStatus reports which storage backend the process is serving from so
// operators can tell a degraded instance apart from a healthy one.
func (h *StatusHandler) GetStatus(c echo.Context) error {
	mode := "memory"
	if h.store.Persistent() {
		mode = "database"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"storage":    mode,
		"persistent": h.store.Persistent(),
	})
}
