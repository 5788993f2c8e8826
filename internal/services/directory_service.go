package services

import (
	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/store"
)

// DirectoryService manages the departments and doctors the queues run on.
// Directory changes are setup work and are not narrated in the activity log.
type DirectoryService struct {
	store store.Store
}

func NewDirectoryService(s store.Store) *DirectoryService {
	return &DirectoryService{store: s}
}

// Departments returns the active departments.
func (s *DirectoryService) Departments() ([]models.Department, error) {
	return s.store.ListDepartments(true)
}

// CreateDepartment fails with CONFLICT when the code is already taken.
func (s *DirectoryService) CreateDepartment(in models.NewDepartment) (models.Department, error) {
	return s.store.CreateDepartment(in)
}

// Doctors returns the active doctors.
func (s *DirectoryService) Doctors() ([]models.Doctor, error) {
	return s.store.ListDoctors(true)
}

// CreateDoctor fails with NOT_FOUND when the department does not exist.
func (s *DirectoryService) CreateDoctor(in models.NewDoctor) (models.Doctor, error) {
	return s.store.CreateDoctor(in)
}
