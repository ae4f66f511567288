package vaccinations

import "time"

// Vaccination es una fila de la tabla vaccinations.
// Temperature y Dose se guardan como texto tal como los carga el veterinario.
type Vaccination struct {
	ID            int64
	PetID         int64
	VaccineTypeID int64

	AdministeredDate time.Time
	AdministeredBy   *string
	Temperature      *string
	Dose             *string
	BatchNumber      *string
	ExpiryDate       *time.Time
	Notes            *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
