package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wenlock-health-server/internal/apperrors"
	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/store"
)

func TestDirectoryService(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, store.Seed(s))
	dir := NewDirectoryService(s)

	departments, err := dir.Departments()
	require.NoError(t, err)
	assert.Len(t, departments, 2)

	inactive := false
	_, err = dir.CreateDepartment(models.NewDepartment{Name: "Archive", Code: "ARC", IsActive: &inactive})
	require.NoError(t, err)
	departments, err = dir.Departments()
	require.NoError(t, err)
	assert.Len(t, departments, 2, "inactive departments are hidden")

	_, err = dir.CreateDepartment(models.NewDepartment{Name: "Another OT", Code: "OT"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConflict))

	doc, err := dir.CreateDoctor(models.NewDoctor{Name: "Dr. Priya Nair", Specialty: "Dermatology", DepartmentID: models.UintPtr(departments[1].ID)})
	require.NoError(t, err)
	assert.True(t, doc.IsActive)

	doctors, err := dir.Doctors()
	require.NoError(t, err)
	assert.Len(t, doctors, 3)

	_, err = dir.CreateDoctor(models.NewDoctor{Name: "Dr. Nobody", Specialty: "ENT", DepartmentID: models.UintPtr(77)})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}

func TestInventoryService_Create(t *testing.T) {
	f := newFixture(t, false)

	med, err := f.inventory.Create(models.NewMedicine{Name: "Saline 0.9%", Category: "Fluids", Unit: "bags"})
	require.NoError(t, err)
	assert.Equal(t, 0, med.CurrentStock)
	assert.Equal(t, models.DefaultMinimumThreshold, med.MinimumThreshold)

	assert.Equal(t, "Saline 0.9% added to inventory: 0 bags", f.latestLog(t).Message)

	update, ok := f.notifier.last().(realtime.InventoryUpdate)
	require.True(t, ok)
	assert.Len(t, update.LowStockMedicines, 1)

	_, err = f.inventory.Create(models.NewMedicine{Name: "No unit", Category: "Fluids"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}
