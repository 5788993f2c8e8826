package models

import (
	"time"
)

// TokenStatus represents where a token is in its queue lifecycle
type TokenStatus string

const (
	TokenStatusWaiting   TokenStatus = "waiting"
	TokenStatusActive    TokenStatus = "active"
	TokenStatusCompleted TokenStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TokenStatus) Valid() bool {
	switch s {
	case TokenStatusWaiting, TokenStatusActive, TokenStatusCompleted:
		return true
	}
	return false
}

// Token represents a patient's position in a department queue.
// Number is unique only within its department.
type Token struct {
	ID           uint        `json:"id"`
	Number       string      `json:"number"`
	DepartmentID *uint       `json:"departmentId"`
	DoctorID     *uint       `json:"doctorId"`
	Status       TokenStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	CompletedAt  *time.Time  `json:"completedAt"`
}

// NewToken holds the caller-supplied fields for creating a token.
// Status defaults to waiting when empty.
type NewToken struct {
	Number       string      `validate:"required"`
	DepartmentID *uint
	DoctorID     *uint
	Status       TokenStatus
}
