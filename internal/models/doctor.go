package models

// Doctor represents a consulting doctor. Consultation queue state lives on
// CurrentToken; no Token records are created for consultations.
type Doctor struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Specialty    string  `json:"specialty"`
	DepartmentID *uint   `json:"departmentId"`
	CurrentToken *string `json:"currentToken"`
	IsActive     bool    `json:"isActive"`
	Avatar       *string `json:"avatar"`
}

// NewDoctor holds the caller-supplied fields for creating a doctor
type NewDoctor struct {
	Name         string  `json:"name" validate:"required"`
	Specialty    string  `json:"specialty" validate:"required"`
	DepartmentID *uint   `json:"departmentId"`
	CurrentToken *string `json:"currentToken"`
	IsActive     *bool   `json:"isActive"`
	Avatar       *string `json:"avatar"`
}
