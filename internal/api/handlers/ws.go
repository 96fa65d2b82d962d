package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"stockroom/internal/api/ws"
	"stockroom/internal/config"
)

type WebSocketHandler struct {
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(cfg *config.Config) *WebSocketHandler {
	return &WebSocketHandler{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and parks the connection in the hub
// until the client goes away. The read loop only drains control frames; all
// traffic is server to client.
func (h *WebSocketHandler) HandleConnection(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	hub := ws.GetHub()
	connID := hub.Register(conn)
	defer func() {
		hub.Unregister(connID)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket %s closed unexpectedly: %v", connID, err)
			}
			return nil
		}
	}
}
