package store

import (
	"fmt"
	"strconv"

	"wenlock-health-server/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

// Seed loads the default front desk: the OT and Consultation departments,
// two consulting doctors, five medicines (three at or under threshold) and
// the OT queue with token 12 active and 13-20 waiting.
func Seed(s Store) error {
	ot, err := s.CreateDepartment(models.NewDepartment{Name: "Operation Theatre", Code: models.DepartmentCodeOT})
	if err != nil {
		return fmt.Errorf("seed OT department: %w", err)
	}
	consult, err := s.CreateDepartment(models.NewDepartment{Name: "Consultation", Code: models.DepartmentCodeConsult})
	if err != nil {
		return fmt.Errorf("seed consultation department: %w", err)
	}

	doctors := []models.NewDoctor{
		{
			Name:         "Dr. Sarah Johnson",
			Specialty:    "Cardiology",
			DepartmentID: models.UintPtr(consult.ID),
			CurrentToken: strPtr("C-05"),
			Avatar:       strPtr("https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=100"),
		},
		{
			Name:         "Dr. Michael Chen",
			Specialty:    "General Medicine",
			DepartmentID: models.UintPtr(consult.ID),
			CurrentToken: strPtr("G-18"),
			Avatar:       strPtr("https://images.unsplash.com/photo-1559839734-2b71ea197ec2?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=100"),
		},
	}
	for _, d := range doctors {
		if _, err := s.CreateDoctor(d); err != nil {
			return fmt.Errorf("seed doctor %s: %w", d.Name, err)
		}
	}

	medicines := []models.NewMedicine{
		{Name: "Paracetamol 500mg", Category: "Pain Relief", CurrentStock: intPtr(12), MinimumThreshold: intPtr(20), Unit: "tablets"},
		{Name: "Amoxicillin 250mg", Category: "Antibiotic", CurrentStock: intPtr(8), MinimumThreshold: intPtr(15), Unit: "capsules"},
		{Name: "Insulin Injection", Category: "Diabetes", CurrentStock: intPtr(3), MinimumThreshold: intPtr(10), Unit: "vials"},
		{Name: "Aspirin 75mg", Category: "Cardiovascular", CurrentStock: intPtr(45), MinimumThreshold: intPtr(25), Unit: "tablets"},
		{Name: "Metformin 500mg", Category: "Diabetes", CurrentStock: intPtr(32), MinimumThreshold: intPtr(20), Unit: "tablets"},
	}
	for _, m := range medicines {
		if _, err := s.CreateMedicine(m); err != nil {
			return fmt.Errorf("seed medicine %s: %w", m.Name, err)
		}
	}

	for n := 12; n <= 20; n++ {
		status := models.TokenStatusWaiting
		if n == 12 {
			status = models.TokenStatusActive
		}
		_, err := s.CreateToken(models.NewToken{
			Number:       strconv.Itoa(n),
			DepartmentID: models.UintPtr(ot.ID),
			Status:       status,
		})
		if err != nil {
			return fmt.Errorf("seed OT token %d: %w", n, err)
		}
	}

	return nil
}
