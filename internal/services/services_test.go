package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/store"
)

type recordingNotifier struct {
	mu       sync.Mutex
	payloads []realtime.Payload
}

func (r *recordingNotifier) Publish(p realtime.Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
}

func (r *recordingNotifier) all() []realtime.Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]realtime.Payload(nil), r.payloads...)
}

// last returns the most recent payload that is not an activity log entry.
func (r *recordingNotifier) last() realtime.Payload {
	all := r.all()
	for i := len(all) - 1; i >= 0; i-- {
		if _, ok := all[i].(realtime.ActivityLogEntry); !ok {
			return all[i]
		}
	}
	return nil
}

type fixture struct {
	store     *store.MemoryStore
	notifier  *recordingNotifier
	activity  *ActivityService
	queue     *QueueService
	inventory *InventoryService
	alerts    *AlertService
	dashboard *Dashboard
}

func tickingClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Millisecond)
		return current
	}
}

func newFixture(t *testing.T, seed bool) *fixture {
	t.Helper()
	s := store.NewMemoryStore(store.WithClock(tickingClock()))
	if seed {
		require.NoError(t, store.Seed(s))
	}
	n := &recordingNotifier{}
	logger := zap.NewNop()
	activity := NewActivityService(s, n, logger)
	return &fixture{
		store:     s,
		notifier:  n,
		activity:  activity,
		queue:     NewQueueService(s, activity, n, logger),
		inventory: NewInventoryService(s, activity, n),
		alerts:    NewAlertService(s, activity, n),
		dashboard: NewDashboard(s),
	}
}

func (f *fixture) department(t *testing.T, code string) models.Department {
	t.Helper()
	d, err := f.store.GetDepartmentByCode(code)
	require.NoError(t, err)
	return d
}

func (f *fixture) tokenByNumber(t *testing.T, deptID uint, number string) models.Token {
	t.Helper()
	tokens, err := f.store.ListTokensByDepartment(deptID)
	require.NoError(t, err)
	for _, tok := range tokens {
		if tok.Number == number {
			return tok
		}
	}
	t.Fatalf("token %s not found", number)
	return models.Token{}
}

func (f *fixture) latestLog(t *testing.T) models.ActivityLog {
	t.Helper()
	logs, err := f.activity.Recent(1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	return logs[0]
}

func TestNopNotifier(t *testing.T) {
	s := store.NewMemoryStore()
	activity := NewActivityService(s, nil, zap.NewNop())
	_, err := activity.Append("quiet", models.ActivityTokenUpdate, nil)
	assert.NoError(t, err)
}
