package pets

import "context"

type Repository interface {
	// List devuelve las mascotas más recientes primero. Con includeOrphans=false
	// se omiten las que no tienen dueño (inner join).
	List(ctx context.Context, includeOrphans bool) ([]Listed, error)
	GetByID(ctx context.Context, id int64, includeOrphans bool) (Detail, error)
	Create(ctx context.Context, p Pet) (int64, error)
	// Update pisa todos los campos mutables; no falla si el id no existe.
	Update(ctx context.Context, p Pet) error
	// Delete informa si se borró alguna fila.
	Delete(ctx context.Context, id int64) (bool, error)
	ListTypes(ctx context.Context) ([]PetType, error)
}
