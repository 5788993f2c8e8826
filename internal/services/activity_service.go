package services

import (
	"strings"

	"go.uber.org/zap"

	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/store"
)

// ActivityService appends to and reads the activity log
type ActivityService struct {
	store    store.Store
	notifier Notifier
	logger   *zap.Logger
}

func NewActivityService(s store.Store, notifier Notifier, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		store:    s,
		notifier: notifierOrNop(notifier),
		logger:   logger,
	}
}

// Append records one entry and publishes it as an activity_log message.
// Message and type are required.
func (s *ActivityService) Append(message string, activityType models.ActivityType, departmentID *uint) (models.ActivityLog, error) {
	entry, err := s.store.CreateActivityLog(models.NewActivityLog{
		Message:      strings.TrimSpace(message),
		Type:         activityType,
		DepartmentID: departmentID,
	})
	if err != nil {
		return models.ActivityLog{}, err
	}

	s.logger.Info("activity recorded",
		zap.Uint("activity_id", entry.ID),
		zap.String("type", string(entry.Type)),
		zap.String("message", entry.Message),
	)
	s.notifier.Publish(realtime.ActivityLogEntry{ActivityLog: entry})
	return entry, nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// means store.DefaultRecentLimit.
func (s *ActivityService) Recent(limit int) ([]models.ActivityLog, error) {
	return s.store.RecentActivityLogs(limit)
}
