package models

import (
	"time"
)

// DefaultAlertType is used when an alert is raised without a type
const DefaultAlertType = "general"

// EmergencyAlert represents a hospital-wide alert shown on every display.
// DismissedAt is set exactly when IsActive is false.
type EmergencyAlert struct {
	ID          uint       `json:"id"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	DismissedAt *time.Time `json:"dismissedAt"`
}

// NewEmergencyAlert holds the caller-supplied fields for raising an alert
type NewEmergencyAlert struct {
	Message string `json:"message" validate:"required"`
	Type    string `json:"type"`
}
