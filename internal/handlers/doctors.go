package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/services"
	"wenlock-health-server/internal/utils"
)

// DoctorHandler handles doctor related requests.
type DoctorHandler struct {
	directory *services.DirectoryService
	queue     *services.QueueService
	logger    *zap.Logger
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(directory *services.DirectoryService, queue *services.QueueService, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{directory: directory, queue: queue, logger: logger}
}

// GetDoctors lists the active doctors.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.directory.Doctors()
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to fetch doctors")
		return
	}
	utils.OK(c, doctors)
}

// CreateDoctor adds a doctor, optionally attached to a department.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req models.NewDoctor
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, err := h.directory.CreateDoctor(req)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to create doctor")
		return
	}
	utils.OK(c, doctor)
}

// NextToken moves the doctor on to the next consultation token.
func (h *DoctorHandler) NextToken(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "id", "Doctor")
	if !ok {
		return
	}

	doctor, err := h.queue.AdvanceDoctor(doctorID)
	if err != nil {
		utils.RespondError(c, h.logger, err, "Failed to update doctor token")
		return
	}
	utils.OK(c, doctor)
}
