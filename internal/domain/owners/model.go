package owners

import "time"

// Owner es la fila de la tabla owners.
type Owner struct {
	ID int64

	FirstName string
	LastName  string
	Email     string

	Telephone *string
	Address   *string
	City      *string

	CreatedAt time.Time
}

// Name es first_name + " " + last_name, como lo muestra el listado.
func (o Owner) Name() string {
	return o.FirstName + " " + o.LastName
}

// Summary es una fila del listado: el dueño con la cantidad de mascotas.
type Summary struct {
	Owner
	PetsCount int
}
