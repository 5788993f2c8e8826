package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/services"
	"wenlock-health-server/internal/utils"
)

// MedicineHandler handles inventory requests.
type MedicineHandler struct {
	inventory *services.InventoryService
	logger    *zap.Logger
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(inventory *services.InventoryService, logger *zap.Logger) *MedicineHandler {
	return &MedicineHandler{inventory: inventory, logger: logger}
}

// UpdateStockRequest represents the request body for a stock adjustment.
// Quantity is signed: negative values dispense stock.
type UpdateStockRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetMedicines lists the whole inventory.
func (h *MedicineHandler) GetMedicines(c *gin.Context) {
	medicines, err := h.inventory.List()
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to fetch medicines")
		return
	}
	utils.OK(c, medicines)
}

// GetLowStock lists medicines at or below their minimum threshold.
func (h *MedicineHandler) GetLowStock(c *gin.Context) {
	medicines, err := h.inventory.LowStock()
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to fetch low stock medicines")
		return
	}
	utils.OK(c, medicines)
}

func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req models.NewMedicine
	if !utils.BindAndValidate(c, &req) {
		return
	}

	medicine, err := h.inventory.Create(req)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to create medicine")
		return
	}
	utils.OK(c, medicine)
}

// UpdateStock applies a signed quantity to a medicine's stock.
func (h *MedicineHandler) UpdateStock(c *gin.Context) {
	medicineID, ok := parseIDParam(c, "id", "Medicine")
	if !ok {
		return
	}

	var req UpdateStockRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.BadRequest(c, "Quantity must be a number")
		return
	}

	medicine, err := h.inventory.UpdateStock(medicineID, *req.Quantity)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to update medicine stock")
		return
	}
	utils.OK(c, medicine)
}
