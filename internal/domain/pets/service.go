package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"
)

const requiredFieldsMsg = "Required fields: name, type_id, owner_id"

var (
	ErrNotFound      = apperr.NotFound("Pet not found")
	ErrNoTypes       = apperr.NotFound("No pet types found.")
	ErrInvalidID     = apperr.Validation("Invalid pet ID")
	ErrRequired      = apperr.Validation(requiredFieldsMsg)
	ErrBadReferences = apperr.Validation("type_id or owner_id does not reference an existing row")
	ErrInvalidGender = apperr.Validation("Invalid fields: gender (expected one of male female unknown)")
)

type Service struct {
	repo   Repository
	policy Policy
	now    func() time.Time
}

func NewService(repo Repository, policy Policy) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		now:    time.Now,
	}
}

// Input son los campos que acepta create/update.
type Input struct {
	Name        string
	TypeID      int64
	Breed       *string
	DateOfBirth *time.Time
	Gender      Gender
	OwnerID     int64
	Notes       *string
}

func (s *Service) List(ctx context.Context) ([]Listed, error) {
	items, err := s.repo.List(ctx, s.policy.Orphans == OrphansVisible)
	if err != nil {
		return nil, apperr.Internal("Error fetching pets", err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Detail, error) {
	if id <= 0 {
		return Detail{}, ErrInvalidID
	}
	d, err := s.repo.GetByID(ctx, id, s.policy.Orphans == OrphansVisible)
	if err != nil {
		return Detail{}, passOr(err, "Error fetching pet")
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, in Input) (int64, error) {
	p, err := s.normalize(in)
	if err != nil {
		return 0, err
	}
	p.CreatedAt = s.now()

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return 0, passOr(err, "Error creating pet")
	}
	return id, nil
}

// Update pisa todos los campos. Igual que owners, no comprueba que el id exista.
func (s *Service) Update(ctx context.Context, id int64, in Input) error {
	if id <= 0 {
		return ErrInvalidID
	}
	p, err := s.normalize(in)
	if err != nil {
		return err
	}
	p.ID = id

	if err := s.repo.Update(ctx, p); err != nil {
		return passOr(err, "Error updating pet")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("Error deleting pet", err)
	}
	if !deleted && s.policy.DeleteMissing == DeleteMissingNotFound {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListTypes(ctx context.Context) ([]PetType, error) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, apperr.Internal("Error fetching pet types. Please check the database.", err)
	}
	if len(types) == 0 {
		return nil, ErrNoTypes
	}
	return types, nil
}

// normalize guarda nombre, raza y notas tal como llegaron; solo gender se
// normaliza a minúsculas.
func (s *Service) normalize(in Input) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" || in.TypeID <= 0 || in.OwnerID <= 0 {
		return Pet{}, ErrRequired
	}

	gender := Gender(strings.ToLower(strings.TrimSpace(string(in.Gender))))
	if gender == "" {
		gender = GenderUnknown
	}
	if !gender.Valid() {
		return Pet{}, ErrInvalidGender
	}

	return Pet{
		Name:        in.Name,
		TypeID:      in.TypeID,
		Breed:       in.Breed,
		DateOfBirth: in.DateOfBirth,
		Gender:      gender,
		OwnerID:     in.OwnerID,
		Notes:       in.Notes,
	}, nil
}

// passOr deja pasar los errores de dominio (not found, referencias rotas) y
// convierte el resto en internos con msg.
func passOr(err error, msg string) error {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrValidation) {
		return err
	}
	return apperr.Internal(msg, err)
}
