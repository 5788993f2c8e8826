package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wenlock-health-server/internal/services"
	"wenlock-health-server/internal/store"
	"wenlock-health-server/internal/utils"
)

// ActivityLogHandler serves the activity feed.
type ActivityLogHandler struct {
	activity *services.ActivityService
	logger   *zap.Logger
}

// NewActivityLogHandler creates a new ActivityLogHandler.
func NewActivityLogHandler(activity *services.ActivityService, logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{activity: activity, logger: logger}
}

// GetRecentLogs returns the newest entries. A missing or unparsable limit
// falls back to the default of 10.
func (h *ActivityLogHandler) GetRecentLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = store.DefaultRecentLimit
	}

	logs, err := h.activity.Recent(limit)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to fetch activity logs")
		return
	}
	utils.OK(c, logs)
}
