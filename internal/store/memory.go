package store

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"wenlock-health-server/internal/apperrors"
	"wenlock-health-server/internal/models"
)

// DefaultRecentLimit is the number of activity logs returned when no limit is given
const DefaultRecentLimit = 10

// Option configures a MemoryStore
type Option func(*MemoryStore)

// WithClock overrides the time source used for created/completed/dismissed timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

type counters struct {
	departments  uint
	doctors      uint
	tokens       uint
	medicines    uint
	alerts       uint
	activityLogs uint
}

// MemoryStore is a Store backed by one map per entity kind.
// A single RWMutex guards all maps and counters.
type MemoryStore struct {
	mu sync.RWMutex

	departments  map[uint]models.Department
	doctors      map[uint]models.Doctor
	tokens       map[uint]models.Token
	medicines    map[uint]models.Medicine
	alerts       map[uint]models.EmergencyAlert
	activityLogs map[uint]models.ActivityLog

	nextID   counters
	now      func() time.Time
	validate *validator.Validate
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store. Use Seed to load the default front-desk data.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		departments:  make(map[uint]models.Department),
		doctors:      make(map[uint]models.Doctor),
		tokens:       make(map[uint]models.Token),
		medicines:    make(map[uint]models.Medicine),
		alerts:       make(map[uint]models.EmergencyAlert),
		activityLogs: make(map[uint]models.ActivityLog),
		nextID: counters{
			departments:  1,
			doctors:      1,
			tokens:       1,
			medicines:    1,
			alerts:       1,
			activityLogs: 1,
		},
		now:      time.Now,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) check(in interface{}) error {
	if err := s.validate.Struct(in); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// sortedValues returns the map values ordered by ascending id, which is
// insertion order since ids are never reused.
func sortedValues[T any](m map[uint]T, keep func(T) bool) []T {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// ParseTokenNumber returns the integer value of a token number. Numbers that
// are not plain integers count as 0.
func ParseTokenNumber(number string) int {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return 0
	}
	return n
}

// Departments

func (s *MemoryStore) ListDepartments(activeOnly bool) ([]models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.departments, func(d models.Department) bool {
		return !activeOnly || d.IsActive
	}), nil
}

func (s *MemoryStore) GetDepartment(id uint) (models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.departments[id]
	if !ok {
		return models.Department{}, apperrors.NewNotFoundError("Department not found")
	}
	return d, nil
}

func (s *MemoryStore) GetDepartmentByCode(code string) (models.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range sortedValues(s.departments, nil) {
		if d.Code == code {
			return d, nil
		}
	}
	return models.Department{}, apperrors.NewNotFoundError(code + " department not found")
}

func (s *MemoryStore) CreateDepartment(in models.NewDepartment) (models.Department, error) {
	if err := s.check(in); err != nil {
		return models.Department{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.departments {
		if existing.Code == in.Code {
			return models.Department{}, apperrors.NewConflictError("Department code " + in.Code + " already exists")
		}
	}

	d := models.Department{
		ID:       s.nextID.departments,
		Name:     in.Name,
		Code:     in.Code,
		IsActive: boolOr(in.IsActive, true),
	}
	s.nextID.departments++
	s.departments[d.ID] = d
	return d, nil
}

// Doctors

func (s *MemoryStore) ListDoctors(activeOnly bool) ([]models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.doctors, func(d models.Doctor) bool {
		return !activeOnly || d.IsActive
	}), nil
}

func (s *MemoryStore) ListDoctorsByDepartment(departmentID uint) ([]models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.doctors, func(d models.Doctor) bool {
		return d.IsActive && d.DepartmentID != nil && *d.DepartmentID == departmentID
	}), nil
}

func (s *MemoryStore) GetDoctor(id uint) (models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.doctors[id]
	if !ok {
		return models.Doctor{}, apperrors.NewNotFoundError("Doctor not found")
	}
	return d, nil
}

func (s *MemoryStore) CreateDoctor(in models.NewDoctor) (models.Doctor, error) {
	if err := s.check(in); err != nil {
		return models.Doctor{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.DepartmentID != nil {
		if _, ok := s.departments[*in.DepartmentID]; !ok {
			return models.Doctor{}, apperrors.NewNotFoundError("Department not found")
		}
	}

	d := models.Doctor{
		ID:           s.nextID.doctors,
		Name:         in.Name,
		Specialty:    in.Specialty,
		DepartmentID: in.DepartmentID,
		CurrentToken: in.CurrentToken,
		IsActive:     boolOr(in.IsActive, true),
		Avatar:       in.Avatar,
	}
	s.nextID.doctors++
	s.doctors[d.ID] = d
	return d, nil
}

func (s *MemoryStore) UpdateDoctorToken(id uint, currentToken string) (models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.doctors[id]
	if !ok {
		return models.Doctor{}, apperrors.NewNotFoundError("Doctor not found")
	}
	label := currentToken
	d.CurrentToken = &label
	s.doctors[id] = d
	return d, nil
}

// Tokens

func (s *MemoryStore) ListTokens() ([]models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.tokens, nil), nil
}

func (s *MemoryStore) ListTokensByDepartment(departmentID uint) ([]models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tokensInDepartment(departmentID), nil
}

func (s *MemoryStore) tokensInDepartment(departmentID uint) []models.Token {
	return sortedValues(s.tokens, func(t models.Token) bool {
		return t.DepartmentID != nil && *t.DepartmentID == departmentID
	})
}

func (s *MemoryStore) ListActiveTokens() ([]models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.tokens, func(t models.Token) bool {
		return t.Status == models.TokenStatusActive
	}), nil
}

func (s *MemoryStore) GetToken(id uint) (models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[id]
	if !ok {
		return models.Token{}, apperrors.NewNotFoundError("Token not found")
	}
	return t, nil
}

func (s *MemoryStore) CreateToken(in models.NewToken) (models.Token, error) {
	if err := s.check(in); err != nil {
		return models.Token{}, err
	}
	status := in.Status
	if status == "" {
		status = models.TokenStatusWaiting
	}
	if !status.Valid() {
		return models.Token{}, apperrors.NewValidationError("Invalid token status " + string(status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := models.Token{
		ID:           s.nextID.tokens,
		Number:       in.Number,
		DepartmentID: in.DepartmentID,
		DoctorID:     in.DoctorID,
		Status:       status,
		CreatedAt:    s.now(),
	}
	if status == models.TokenStatusCompleted {
		completedAt := t.CreatedAt
		t.CompletedAt = &completedAt
	}
	s.nextID.tokens++
	s.tokens[t.ID] = t
	return t, nil
}

// UpdateTokenStatus sets the status and keeps CompletedAt in step: it is
// stamped when the token completes and cleared for any other status.
func (s *MemoryStore) UpdateTokenStatus(id uint, status models.TokenStatus) (models.Token, error) {
	if !status.Valid() {
		return models.Token{}, apperrors.NewValidationError("Invalid token status " + string(status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[id]
	if !ok {
		return models.Token{}, apperrors.NewNotFoundError("Token not found")
	}
	t.Status = status
	if status == models.TokenStatusCompleted {
		completedAt := s.now()
		t.CompletedAt = &completedAt
	} else {
		t.CompletedAt = nil
	}
	s.tokens[id] = t
	return t, nil
}

func (s *MemoryStore) NextTokenNumber(departmentID uint) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxNumber := 0
	for _, t := range s.tokensInDepartment(departmentID) {
		if n := ParseTokenNumber(t.Number); n > maxNumber {
			maxNumber = n
		}
	}
	return strconv.Itoa(maxNumber + 1), nil
}

// Medicines

func (s *MemoryStore) ListMedicines() ([]models.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.medicines, nil), nil
}

func (s *MemoryStore) ListLowStockMedicines() ([]models.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.medicines, models.Medicine.IsLowStock), nil
}

func (s *MemoryStore) GetMedicine(id uint) (models.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.medicines[id]
	if !ok {
		return models.Medicine{}, apperrors.NewNotFoundError("Medicine not found")
	}
	return m, nil
}

func (s *MemoryStore) CreateMedicine(in models.NewMedicine) (models.Medicine, error) {
	if err := s.check(in); err != nil {
		return models.Medicine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := models.Medicine{
		ID:               s.nextID.medicines,
		Name:             in.Name,
		Category:         in.Category,
		CurrentStock:     intOr(in.CurrentStock, 0),
		MinimumThreshold: intOr(in.MinimumThreshold, models.DefaultMinimumThreshold),
		Unit:             in.Unit,
	}
	s.nextID.medicines++
	s.medicines[m.ID] = m
	return m, nil
}

// AdjustMedicineStock adds delta to the current stock. The result may be negative.
func (s *MemoryStore) AdjustMedicineStock(id uint, delta int) (models.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.medicines[id]
	if !ok {
		return models.Medicine{}, apperrors.NewNotFoundError("Medicine not found")
	}
	m.CurrentStock += delta
	s.medicines[id] = m
	return m, nil
}

// Emergency alerts

func (s *MemoryStore) ListActiveAlerts() ([]models.EmergencyAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.alerts, func(a models.EmergencyAlert) bool {
		return a.IsActive
	}), nil
}

func (s *MemoryStore) GetAlert(id uint) (models.EmergencyAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.alerts[id]
	if !ok {
		return models.EmergencyAlert{}, apperrors.NewNotFoundError("Alert not found")
	}
	return a, nil
}

func (s *MemoryStore) CreateAlert(in models.NewEmergencyAlert) (models.EmergencyAlert, error) {
	if err := s.check(in); err != nil {
		return models.EmergencyAlert{}, err
	}
	alertType := in.Type
	if alertType == "" {
		alertType = models.DefaultAlertType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := models.EmergencyAlert{
		ID:        s.nextID.alerts,
		Message:   in.Message,
		Type:      alertType,
		IsActive:  true,
		CreatedAt: s.now(),
	}
	s.nextID.alerts++
	s.alerts[a.ID] = a
	return a, nil
}

func (s *MemoryStore) DismissAlert(id uint) (models.EmergencyAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return models.EmergencyAlert{}, apperrors.NewNotFoundError("Alert not found")
	}
	dismissedAt := s.now()
	a.IsActive = false
	a.DismissedAt = &dismissedAt
	s.alerts[id] = a
	return a, nil
}

// Activity logs

func (s *MemoryStore) CreateActivityLog(in models.NewActivityLog) (models.ActivityLog, error) {
	if err := s.check(in); err != nil {
		return models.ActivityLog{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := models.ActivityLog{
		ID:           s.nextID.activityLogs,
		Message:      in.Message,
		Type:         in.Type,
		DepartmentID: in.DepartmentID,
		CreatedAt:    s.now(),
	}
	s.nextID.activityLogs++
	s.activityLogs[l.ID] = l
	return l, nil
}

// RecentActivityLogs returns up to limit entries, newest first. Entries with
// the same timestamp are ordered by descending id.
func (s *MemoryStore) RecentActivityLogs(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.RLock()
	logs := sortedValues(s.activityLogs, nil)
	s.mu.RUnlock()

	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].CreatedAt.Equal(logs[j].CreatedAt) {
			return logs[i].CreatedAt.After(logs[j].CreatedAt)
		}
		return logs[i].ID > logs[j].ID
	})
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
