package models

// ActivityType tags an activity log entry with the kind of change it narrates
type ActivityType string

const (
	ActivityTokenUpdate     ActivityType = "token_update"
	ActivityInventoryUpdate ActivityType = "inventory_update"
	ActivityEmergency       ActivityType = "emergency"
)

// Department codes known to the front desk
const (
	DepartmentCodeOT      = "OT"
	DepartmentCodeConsult = "CONSULT"
)

// UintPtr returns a pointer to v. Used for optional foreign keys.
func UintPtr(v uint) *uint {
	return &v
}
