package vaccinations

import "context"

type Repository interface {
	// List ordena por id descendente.
	List(ctx context.Context) ([]Vaccination, error)
	GetByID(ctx context.Context, id int64) (Vaccination, error)
	Create(ctx context.Context, v Vaccination) (int64, error)
	Update(ctx context.Context, v Vaccination) error
	// Delete devuelve la cantidad de filas afectadas.
	Delete(ctx context.Context, id int64) (int64, error)
}
