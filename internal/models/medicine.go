package models

const (
	// DefaultMinimumThreshold applies when a medicine is created without one
	DefaultMinimumThreshold = 10
)

// Medicine represents a stocked pharmacy item. CurrentStock is allowed to go
// negative; nothing clamps it.
type Medicine struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	CurrentStock     int    `json:"currentStock"`
	MinimumThreshold int    `json:"minimumThreshold"`
	Unit             string `json:"unit"`
}

// IsLowStock reports whether the stock is at or below the minimum threshold.
func (m Medicine) IsLowStock() bool {
	return m.CurrentStock <= m.MinimumThreshold
}

// NewMedicine holds the caller-supplied fields for creating a medicine
type NewMedicine struct {
	Name             string `json:"name" validate:"required"`
	Category         string `json:"category" validate:"required"`
	CurrentStock     *int   `json:"currentStock"`
	MinimumThreshold *int   `json:"minimumThreshold"`
	Unit             string `json:"unit" validate:"required"`
}
