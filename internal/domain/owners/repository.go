package owners

import (
	"context"

	"vet-clinic/internal/domain/pets"
)

type Repository interface {
	List(ctx context.Context) ([]Summary, error)
	GetByID(ctx context.Context, id int64) (Owner, error)
	ListPets(ctx context.Context, ownerID int64) ([]pets.Pet, error)
	Create(ctx context.Context, o Owner) (int64, error)
	// Update pisa los campos mutables; un id inexistente no es error.
	Update(ctx context.Context, o Owner) error
	// Delete borra las mascotas del dueño y luego el dueño, en una sola transacción.
	// Si el dueño no existe devuelve ErrNotFound y no borra nada.
	Delete(ctx context.Context, id int64) error
}
