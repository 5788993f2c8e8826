package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"wenlock-health-server/internal/apperrors"
	"wenlock-health-server/internal/models"
	"wenlock-health-server/internal/realtime"
	"wenlock-health-server/internal/store"
)

const defaultConsultationPrefix = "C"

// QueueService runs the department token queues and the per-doctor
// consultation counters. Mutating calls are serialised so a multi-step
// advance or reset is never observed half-applied.
type QueueService struct {
	mu       sync.Mutex
	store    store.Store
	activity *ActivityService
	notifier Notifier
	logger   *zap.Logger
}

func NewQueueService(s store.Store, activity *ActivityService, notifier Notifier, logger *zap.Logger) *QueueService {
	return &QueueService{
		store:    s,
		activity: activity,
		notifier: notifierOrNop(notifier),
		logger:   logger,
	}
}

// Advance completes the department's active token and promotes the lowest
// numbered waiting token. The active token is completed even when nothing is
// waiting; the call then fails with NO_WAITING_TOKENS.
func (s *QueueService) Advance(code string) (models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, err := s.store.GetDepartmentByCode(code)
	if err != nil {
		return models.Token{}, err
	}
	tokens, err := s.store.ListTokensByDepartment(dept.ID)
	if err != nil {
		return models.Token{}, err
	}

	var waiting []models.Token
	completed := 0
	for _, t := range tokens {
		switch t.Status {
		case models.TokenStatusActive:
			if _, err := s.store.UpdateTokenStatus(t.ID, models.TokenStatusCompleted); err != nil {
				return models.Token{}, err
			}
			completed++
		case models.TokenStatusWaiting:
			waiting = append(waiting, t)
		}
	}
	if completed > 1 {
		s.logger.Warn("department had more than one active token", zap.String("department", code), zap.Int("active", completed))
	}

	if len(waiting) == 0 {
		if completed > 0 {
			s.notifier.Publish(realtime.TokenUpdate{Action: realtime.TokenActionAdvanced, DepartmentID: models.UintPtr(dept.ID)})
		}
		return models.Token{}, apperrors.NewNoWaitingTokensError("No waiting tokens")
	}

	sort.SliceStable(waiting, func(i, j int) bool {
		return store.ParseTokenNumber(waiting[i].Number) < store.ParseTokenNumber(waiting[j].Number)
	})
	next, err := s.store.UpdateTokenStatus(waiting[0].ID, models.TokenStatusActive)
	if err != nil {
		return models.Token{}, err
	}

	msg := fmt.Sprintf("%s Token %s now being served", dept.Code, next.Number)
	if _, err := s.activity.Append(msg, models.ActivityTokenUpdate, models.UintPtr(dept.ID)); err != nil {
		return models.Token{}, err
	}
	s.notifier.Publish(realtime.TokenUpdate{
		Action:       realtime.TokenActionAdvanced,
		DepartmentID: models.UintPtr(dept.ID),
		Token:        &next,
	})
	return next, nil
}

// Reset puts every non-completed token back to waiting, then activates token
// "1", or the earliest created non-completed token when there is no "1".
// Completed tokens are left alone. The returned token is nil when nothing
// could be activated.
func (s *QueueService) Reset(code string) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, err := s.store.GetDepartmentByCode(code)
	if err != nil {
		return nil, err
	}
	tokens, err := s.store.ListTokensByDepartment(dept.ID)
	if err != nil {
		return nil, err
	}

	var candidates []models.Token
	for _, t := range tokens {
		if t.Status == models.TokenStatusCompleted {
			continue
		}
		if t.Status != models.TokenStatusWaiting {
			if _, err := s.store.UpdateTokenStatus(t.ID, models.TokenStatusWaiting); err != nil {
				return nil, err
			}
		}
		candidates = append(candidates, t)
	}

	var activated *models.Token
	if len(candidates) > 0 {
		first := candidates[0]
		for _, t := range candidates {
			if t.Number == "1" {
				first = t
				break
			}
		}
		tok, err := s.store.UpdateTokenStatus(first.ID, models.TokenStatusActive)
		if err != nil {
			return nil, err
		}
		activated = &tok
	}

	msg := fmt.Sprintf("%s queue reset - starting from token 1", dept.Code)
	if _, err := s.activity.Append(msg, models.ActivityTokenUpdate, models.UintPtr(dept.ID)); err != nil {
		return nil, err
	}
	s.notifier.Publish(realtime.TokenUpdate{
		Action:       realtime.TokenActionReset,
		DepartmentID: models.UintPtr(dept.ID),
		Token:        activated,
	})
	return activated, nil
}

// AdvanceDoctor moves an active doctor's consultation label on by one,
// e.g. "C-05" to "C-06".
func (s *QueueService) AdvanceDoctor(doctorID uint) (models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.GetDoctor(doctorID)
	if err != nil {
		return models.Doctor{}, err
	}
	if !doc.IsActive {
		return models.Doctor{}, apperrors.NewNotFoundError("Doctor not found")
	}

	label := NextConsultationLabel(doc.CurrentToken)
	updated, err := s.store.UpdateDoctorToken(doc.ID, label)
	if err != nil {
		return models.Doctor{}, err
	}

	msg := fmt.Sprintf("%s now serving Token %s", updated.Name, label)
	if _, err := s.activity.Append(msg, models.ActivityTokenUpdate, updated.DepartmentID); err != nil {
		return models.Doctor{}, err
	}
	s.notifier.Publish(realtime.TokenUpdate{
		Action:       realtime.TokenActionDoctorAdvanced,
		DepartmentID: updated.DepartmentID,
		Doctor:       &updated,
	})
	return updated, nil
}

// CreateToken issues the next waiting token for a department. doctorID is
// optional; zero is treated as absent.
func (s *QueueService) CreateToken(departmentID uint, doctorID *uint) (models.Token, error) {
	if departmentID == 0 {
		return models.Token{}, apperrors.NewValidationError("Department ID is required")
	}
	if doctorID != nil && *doctorID == 0 {
		doctorID = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dept, err := s.store.GetDepartment(departmentID)
	if err != nil {
		return models.Token{}, err
	}
	if doctorID != nil {
		if _, err := s.store.GetDoctor(*doctorID); err != nil {
			return models.Token{}, err
		}
	}

	number, err := s.store.NextTokenNumber(dept.ID)
	if err != nil {
		return models.Token{}, err
	}
	tok, err := s.store.CreateToken(models.NewToken{
		Number:       number,
		DepartmentID: models.UintPtr(dept.ID),
		DoctorID:     doctorID,
		Status:       models.TokenStatusWaiting,
	})
	if err != nil {
		return models.Token{}, err
	}

	msg := fmt.Sprintf("New patient added to %s queue - Token %s", dept.Name, tok.Number)
	if _, err := s.activity.Append(msg, models.ActivityTokenUpdate, models.UintPtr(dept.ID)); err != nil {
		return models.Token{}, err
	}
	s.notifier.Publish(realtime.TokenUpdate{
		Action:       realtime.TokenActionCreated,
		DepartmentID: models.UintPtr(dept.ID),
		Token:        &tok,
	})
	return tok, nil
}

func (s *QueueService) ListTokens() ([]models.Token, error) {
	return s.store.ListTokens()
}

// ListTokensByDepartment returns the department's tokens. An unknown
// department simply has no tokens.
func (s *QueueService) ListTokensByDepartment(departmentID uint) ([]models.Token, error) {
	return s.store.ListTokensByDepartment(departmentID)
}

// NextConsultationLabel increments a "<prefix>-<number>" label and renders
// the number with at least two digits. A missing or malformed label counts
// as "C-00".
func NextConsultationLabel(current *string) string {
	prefix, n := parseConsultationLabel(current)
	return fmt.Sprintf("%s-%02d", prefix, n+1)
}

func parseConsultationLabel(label *string) (string, int) {
	if label == nil {
		return defaultConsultationPrefix, 0
	}
	prefix, digits, ok := strings.Cut(strings.TrimSpace(*label), "-")
	if !ok || prefix == "" || digits == "" {
		return defaultConsultationPrefix, 0
	}
	for _, r := range prefix {
		if !unicode.IsLetter(r) {
			return defaultConsultationPrefix, 0
		}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return defaultConsultationPrefix, 0
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return defaultConsultationPrefix, 0
	}
	return prefix, n
}
