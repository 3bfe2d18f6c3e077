package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"aircraft_manager/internal/events"
)

// EventsController streams aircraft lifecycle events to websocket clients.
type EventsController struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
}

func NewEventsController(hub *events.Hub) *EventsController {
	return &EventsController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origins are already filtered by the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleAircraftWebSocket upgrades GET /ws/aircrafts and keeps the client
// registered with the hub until it disconnects. Clients only receive.
func (ec *EventsController) HandleAircraftWebSocket(c *gin.Context) {
	conn, err := ec.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	ec.hub.RegisterClient(conn)
	defer ec.hub.UnregisterClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Aircraft feed WebSocket closed.")
			} else {
				logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).Warn("Aircraft feed WebSocket read failed.")
			}
			return
		}
		logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Debug("Aircraft feed client sent unexpected message. Ignoring.")
	}
}
