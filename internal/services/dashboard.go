package services

import (
	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/store"
)

// Dashboard reads whole-system views for the push channel
type Dashboard struct {
	store store.Store
}

var _ realtime.StateSource = (*Dashboard)(nil)

func NewDashboard(s store.Store) *Dashboard {
	return &Dashboard{store: s}
}

// Snapshot collects the current state with the logLimit most recent
// activity entries.
func (d *Dashboard) Snapshot(logLimit int) (realtime.Snapshot, error) {
	var snap realtime.Snapshot
	var err error

	if snap.Departments, err = d.store.ListDepartments(true); err != nil {
		return realtime.Snapshot{}, err
	}
	if snap.Doctors, err = d.store.ListDoctors(true); err != nil {
		return realtime.Snapshot{}, err
	}
	if snap.Tokens, err = d.store.ListTokens(); err != nil {
		return realtime.Snapshot{}, err
	}
	if snap.Medicines, err = d.store.ListMedicines(); err != nil {
		return realtime.Snapshot{}, err
	}
	if snap.Alerts, err = d.store.ListActiveAlerts(); err != nil {
		return realtime.Snapshot{}, err
	}
	if snap.Logs, err = d.store.RecentActivityLogs(logLimit); err != nil {
		return realtime.Snapshot{}, err
	}
	return snap, nil
}

func (d *Dashboard) LowStockMedicines() ([]models.Medicine, error) {
	return d.store.ListLowStockMedicines()
}
