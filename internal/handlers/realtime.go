package handlers

import (
	"github.com/gin-gonic/gin"

	"wenlock-health-server/internal/realtime"
)

// RealtimeHandler upgrades display connections to the push channel.
type RealtimeHandler struct {
	hub *realtime.Hub
}

// NewRealtimeHandler creates a new RealtimeHandler.
func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Connect serves one websocket subscriber until it disconnects.
func (h *RealtimeHandler) Connect(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
