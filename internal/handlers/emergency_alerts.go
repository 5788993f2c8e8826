package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wenlock-health-server/internal/services"
	"wenlock-health-server/internal/utils"
)

// AlertHandler handles emergency alert requests.
type AlertHandler struct {
	alerts *services.AlertService
	logger *zap.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts *services.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{alerts: alerts, logger: logger}
}

// CreateAlertRequest represents the request body for raising an alert.
type CreateAlertRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// GetActiveAlerts lists alerts that have not been dismissed.
func (h *AlertHandler) GetActiveAlerts(c *gin.Context) {
	alerts, err := h.alerts.Active()
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to fetch emergency alerts")
		return
	}
	utils.OK(c, alerts)
}

// CreateAlert raises an alert on every display.
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req CreateAlertRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.BadRequest(c, "Invalid alert data")
		return
	}

	alert, err := h.alerts.Raise(req.Message, req.Type)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to create emergency alert")
		return
	}
	utils.OK(c, alert)
}

// DismissAlert clears an alert.
func (h *AlertHandler) DismissAlert(c *gin.Context) {
	alertID, ok := parseIDParam(c, "id", "Alert")
	if !ok {
		return
	}

	alert, err := h.alerts.Dismiss(alertID)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to dismiss emergency alert")
		return
	}
	utils.OK(c, alert)
}
