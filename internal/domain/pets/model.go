package pets

import "time"

// Gender define el sexo de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// Pet es la fila de la tabla pets.
type Pet struct {
	ID   int64
	Name string

	TypeID int64 // pet_types.id
	Breed  *string

	DateOfBirth *time.Time // DATE, sin hora
	Gender      Gender

	OwnerID int64 // owners.id
	Notes   *string

	CreatedAt time.Time
}

// Listed es una fila del listado: la mascota + nombre y email del dueño.
// OwnerName/OwnerEmail son nil si el dueño ya no existe (solo visible con OrphansVisible).
type Listed struct {
	Pet
	OwnerName  *string
	OwnerEmail *string
}

// Detail es la mascota con el nombre completo del dueño.
type Detail struct {
	Pet
	OwnerName *string
}

// PetType es la tabla de lookup pet_types. Solo lectura para la aplicación.
type PetType struct {
	ID   int64
	Name string
}

// DefaultTypes se siembra cuando pet_types está vacía.
var DefaultTypes = []string{"Dog", "Cat", "Bird", "Rabbit", "Reptile", "Other"}
