package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/platform/apperr"
)

const requiredFieldsMsg = "Required fields: first_name, last_name, email"

var (
	ErrNotFound = apperr.NotFound("Owner not found")
	ErrRequired = apperr.Validation(requiredFieldsMsg)
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	FirstName string
	LastName  string
	Email     string
	Telephone *string
	Address   *string
	City      *string
}

func (s *Service) List(ctx context.Context) ([]Summary, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Error fetching owners", err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Owner, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Owner{}, ErrNotFound
		}
		return Owner{}, apperr.Internal("Error fetching owner", err)
	}
	return o, nil
}

// ListPets no verifica que el dueño exista: un id desconocido devuelve lista vacía.
func (s *Service) ListPets(ctx context.Context, id int64) ([]pets.Pet, error) {
	items, err := s.repo.ListPets(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Error fetching owner pets", err)
	}
	if items == nil {
		items = []pets.Pet{}
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, in Input) (int64, error) {
	o, err := normalize(in)
	if err != nil {
		return 0, err
	}
	o.CreatedAt = s.now()

	id, err := s.repo.Create(ctx, o)
	if err != nil {
		return 0, apperr.Internal("Error creating owner", err)
	}
	return id, nil
}

// Update pisa todos los campos mutables sin comprobar antes que el id exista.
func (s *Service) Update(ctx context.Context, id int64, in Input) error {
	o, err := normalize(in)
	if err != nil {
		return err
	}
	o.ID = id

	if err := s.repo.Update(ctx, o); err != nil {
		return apperr.Internal("Error updating owner", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrNotFound
		}
		return apperr.Internal("Error deleting owner", err)
	}
	return nil
}

// normalize solo usa el trim para decidir si un requerido vino vacío; los
// valores se guardan tal como llegaron.
func normalize(in Input) (Owner, error) {
	if blank(in.FirstName) || blank(in.LastName) || blank(in.Email) {
		return Owner{}, ErrRequired
	}
	return Owner{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Telephone: in.Telephone,
		Address:   in.Address,
		City:      in.City,
	}, nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
