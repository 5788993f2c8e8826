package models

import (
	"time"
)

// ActivityLog is one append-only line of the front-desk audit trail
type ActivityLog struct {
	ID           uint         `json:"id"`
	Message      string       `json:"message"`
	Type         ActivityType `json:"type"`
	DepartmentID *uint        `json:"departmentId"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// NewActivityLog holds the caller-supplied fields for an activity log entry
type NewActivityLog struct {
	Message      string       `validate:"required"`
	Type         ActivityType `validate:"required"`
	DepartmentID *uint
}
