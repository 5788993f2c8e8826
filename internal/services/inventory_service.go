package services

import (
	"fmt"
	"sync"

	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/store"
)

// InventoryService adjusts medicine stock and reports low stock
type InventoryService struct {
	mu       sync.Mutex
	store    store.Store
	activity *ActivityService
	notifier Notifier
}

func NewInventoryService(s store.Store, activity *ActivityService, notifier Notifier) *InventoryService {
	return &InventoryService{
		store:    s,
		activity: activity,
		notifier: notifierOrNop(notifier),
	}
}

// UpdateStock adds delta to the medicine's stock. Stock is not clamped, so a
// large negative delta leaves it below zero.
func (s *InventoryService) UpdateStock(id uint, delta int) (models.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	med, err := s.store.AdjustMedicineStock(id, delta)
	if err != nil {
		return models.Medicine{}, err
	}

	if _, err := s.activity.Append(stockMessage(med, delta), models.ActivityInventoryUpdate, nil); err != nil {
		return models.Medicine{}, err
	}

	lowStock, err := s.store.ListLowStockMedicines()
	if err != nil {
		return models.Medicine{}, err
	}
	s.notifier.Publish(realtime.InventoryUpdate{Medicine: &med, LowStockMedicines: lowStock})
	return med, nil
}

func stockMessage(med models.Medicine, delta int) string {
	sign := ""
	if delta > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s stock updated: %s%d %s", med.Name, sign, delta, med.Unit)
}

// Create adds a medicine to the inventory and publishes the new low-stock
// list.
func (s *InventoryService) Create(in models.NewMedicine) (models.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	med, err := s.store.CreateMedicine(in)
	if err != nil {
		return models.Medicine{}, err
	}

	msg := fmt.Sprintf("%s added to inventory: %d %s", med.Name, med.CurrentStock, med.Unit)
	if _, err := s.activity.Append(msg, models.ActivityInventoryUpdate, nil); err != nil {
		return models.Medicine{}, err
	}

	lowStock, err := s.store.ListLowStockMedicines()
	if err != nil {
		return models.Medicine{}, err
	}
	s.notifier.Publish(realtime.InventoryUpdate{Medicine: &med, LowStockMedicines: lowStock})
	return med, nil
}

func (s *InventoryService) List() ([]models.Medicine, error) {
	return s.store.ListMedicines()
}

// LowStock returns medicines whose stock is at or below their threshold.
// It is computed on every call.
func (s *InventoryService) LowStock() ([]models.Medicine, error) {
	return s.store.ListLowStockMedicines()
}
