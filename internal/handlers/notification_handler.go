package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"facilicar_backend/internal/services"
)

// NotificationHandler exposes the appointment event stream.
type NotificationHandler struct {
	hub *services.NotificationHub
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(hub *services.NotificationHub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Stream handles GET /notifications/stream as Server-Sent Events. The
// subscription lives for the duration of the connection; there is no replay
// of events published before it opened. Heartbeat comments keep
// intermediaries from closing the idle connection.
func (h *NotificationHandler) Stream(c *gin.Context) {
	establishmentID, _, ok := tenantScope(c)
	if !ok {
		return
	}

	events, unsubscribe := h.hub.Subscribe(establishmentID)
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-events:
			if !open {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return true
			}
			fmt.Fprintf(w, "event: appointment\ndata: %s\n\n", payload)
			return true
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
