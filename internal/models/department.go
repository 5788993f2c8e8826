package models

// Department represents a hospital department that runs a patient queue
type Department struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"isActive"`
}

// NewDepartment holds the caller-supplied fields for creating a department.
// IsActive defaults to true when omitted.
type NewDepartment struct {
	Name     string `json:"name" binding:"required" validate:"required"`
	Code     string `json:"code" binding:"required" validate:"required"`
	IsActive *bool  `json:"isActive"`
}
