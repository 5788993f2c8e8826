package services

import (
	"go.uber.org/zap"

	"wenlock-health-server/internal/store"
)

// Services bundles the engines that share one store and one notifier
type Services struct {
	Directory *DirectoryService
	Queue     *QueueService
	Inventory *InventoryService
	Alerts    *AlertService
	Activity  *ActivityService
	Dashboard *Dashboard
}

// New wires every service to s. A nil notifier discards push messages.
func New(s store.Store, notifier Notifier, logger *zap.Logger) *Services {
	activity := NewActivityService(s, notifier, logger)
	return &Services{
		Directory: NewDirectoryService(s),
		Queue:     NewQueueService(s, activity, notifier, logger),
		Inventory: NewInventoryService(s, activity, notifier),
		Alerts:    NewAlertService(s, activity, notifier),
		Activity:  activity,
		Dashboard: NewDashboard(s),
	}
}
