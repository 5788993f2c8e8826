package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/services"
	"wenlock-health-server/internal/utils"
)

// DepartmentHandler handles department related requests.
type DepartmentHandler struct {
	directory *services.DirectoryService
	logger    *zap.Logger
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(directory *services.DirectoryService, logger *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{directory: directory, logger: logger}
}

// GetDepartments lists the active departments.
func (h *DepartmentHandler) GetDepartments(c *gin.Context) {
	departments, err := h.directory.Departments()
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to fetch departments")
		return
	}
	utils.OK(c, departments)
}

// CreateDepartment registers a new department. Codes must be unique.
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req models.NewDepartment
	if !utils.BindAndValidate(c, &req) {
		return
	}

	department, err := h.directory.CreateDepartment(req)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to create department")
		return
	}
	utils.OK(c, department)
}
