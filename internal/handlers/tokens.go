package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/services"
	"wenlock-health-server/internal/utils"
)

// TokenHandler handles queue token requests.
type TokenHandler struct {
	queue  *services.QueueService
	logger *zap.Logger
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(queue *services.QueueService, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{queue: queue, logger: logger}
}

// CreateTokenRequest represents the request body for issuing a token.
type CreateTokenRequest struct {
	DepartmentID *uint `json:"departmentId"`
	DoctorID     *uint `json:"doctorId"`
}

// MessageResponse is returned by operations that have no entity to show.
type MessageResponse struct {
	Message string `json:"message"`
}

// GetTokens lists every token across departments.
func (h *TokenHandler) GetTokens(c *gin.Context) {
	tokens, err := h.queue.ListTokens()
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to fetch tokens")
		return
	}
	utils.OK(c, tokens)
}

// CreateToken issues the next token in a department's queue.
func (h *TokenHandler) CreateToken(c *gin.Context) {
	var req CreateTokenRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var departmentID uint
	if req.DepartmentID != nil {
		departmentID = *req.DepartmentID
	}

	token, err := h.queue.CreateToken(departmentID, req.DoctorID)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to create token")
		return
	}
	utils.OK(c, token)
}

// GetTokensByDepartment lists the tokens of one department.
func (h *TokenHandler) GetTokensByDepartment(c *gin.Context) {
	departmentID, ok := parseIDParam(c, "departmentId", "Department")
	if !ok {
		return
	}

	tokens, err := h.queue.ListTokensByDepartment(departmentID)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to fetch department tokens")
		return
	}
	utils.OK(c, tokens)
}

// NextOTToken completes the current OT token and calls the next one.
func (h *TokenHandler) NextOTToken(c *gin.Context) {
	token, err := h.queue.Advance(models.DepartmentCodeOT)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to progress OT token")
		return
	}
	utils.OK(c, token)
}

// ResetOTQueue puts the OT queue back to its start.
func (h *TokenHandler) ResetOTQueue(c *gin.Context) {
	if _, err := h.queue.Reset(models.DepartmentCodeOT); err != nil {
		utils.RespondError(c, h.logger, err, "Failed to reset OT queue")
		return
	}
	utils.OK(c, MessageResponse{Message: "OT queue reset successfully"})
}
