package services

import (
	"strings"
	"sync"

	"wenlock-health-server/internal/apperrors"
	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/store"
)

// AlertService raises and dismisses emergency alerts
type AlertService struct {
	mu       sync.Mutex
	store    store.Store
	activity *ActivityService
	notifier Notifier
}

func NewAlertService(s store.Store, activity *ActivityService, notifier Notifier) *AlertService {
	return &AlertService{
		store:    s,
		activity: activity,
		notifier: notifierOrNop(notifier),
	}
}

// Raise creates an active alert, logs it and pushes it to every display.
// An empty type becomes models.DefaultAlertType.
func (s *AlertService) Raise(message, alertType string) (models.EmergencyAlert, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.EmergencyAlert{}, apperrors.NewValidationError("Invalid alert data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	alert, err := s.store.CreateAlert(models.NewEmergencyAlert{
		Message: message,
		Type:    strings.TrimSpace(alertType),
	})
	if err != nil {
		return models.EmergencyAlert{}, err
	}

	if _, err := s.activity.Append("Emergency Alert: "+alert.Message, models.ActivityEmergency, nil); err != nil {
		return models.EmergencyAlert{}, err
	}
	s.notifier.Publish(realtime.EmergencyAlertUpdate{Action: realtime.AlertActionRaised, Alert: alert})
	return alert, nil
}

// Dismiss deactivates an alert. No activity entry is written; displays are
// told so they can clear the banner.
func (s *AlertService) Dismiss(id uint) (models.EmergencyAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, err := s.store.DismissAlert(id)
	if err != nil {
		return models.EmergencyAlert{}, err
	}
	s.notifier.Publish(realtime.EmergencyAlertUpdate{Action: realtime.AlertActionDismissed, Alert: alert})
	return alert, nil
}

func (s *AlertService) Active() ([]models.EmergencyAlert, error) {
	return s.store.ListActiveAlerts()
}
