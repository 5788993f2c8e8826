// Package store holds the front-desk data: departments, doctors, queue
// tokens, medicines, emergency alerts and the activity log.
//
// Store is the seam for a persistence layer; MemoryStore is the only
// implementation and keeps everything in process memory. Every read returns
// copies, so callers never share state with the store.
package store

import (
	"wenlock-health-server/internal/models"
)

// Store is the data access contract used by the services.
// Unknown ids fail with an apperrors NOT_FOUND error.
type Store interface {
	// Departments
	ListDepartments(activeOnly bool) ([]models.Department, error)
	GetDepartment(id uint) (models.Department, error)
	GetDepartmentByCode(code string) (models.Department, error)
	CreateDepartment(in models.NewDepartment) (models.Department, error)

	// Doctors
	ListDoctors(activeOnly bool) ([]models.Doctor, error)
	ListDoctorsByDepartment(departmentID uint) ([]models.Doctor, error)
	GetDoctor(id uint) (models.Doctor, error)
	CreateDoctor(in models.NewDoctor) (models.Doctor, error)
	UpdateDoctorToken(id uint, currentToken string) (models.Doctor, error)

	// Tokens
	ListTokens() ([]models.Token, error)
	ListTokensByDepartment(departmentID uint) ([]models.Token, error)
	ListActiveTokens() ([]models.Token, error)
	GetToken(id uint) (models.Token, error)
	CreateToken(in models.NewToken) (models.Token, error)
	UpdateTokenStatus(id uint, status models.TokenStatus) (models.Token, error)
	NextTokenNumber(departmentID uint) (string, error)

	// Medicines
	ListMedicines() ([]models.Medicine, error)
	ListLowStockMedicines() ([]models.Medicine, error)
	GetMedicine(id uint) (models.Medicine, error)
	CreateMedicine(in models.NewMedicine) (models.Medicine, error)
	AdjustMedicineStock(id uint, delta int) (models.Medicine, error)

	// Emergency alerts
	ListActiveAlerts() ([]models.EmergencyAlert, error)
	GetAlert(id uint) (models.EmergencyAlert, error)
	CreateAlert(in models.NewEmergencyAlert) (models.EmergencyAlert, error)
	DismissAlert(id uint) (models.EmergencyAlert, error)

	// Activity logs
	CreateActivityLog(in models.NewActivityLog) (models.ActivityLog, error)
	RecentActivityLogs(limit int) ([]models.ActivityLog, error)
}
