package vaccinations

import (
	"context"
	"errors"
	"time"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/optional"
)

var (
	ErrNotFound      = apperr.NotFound("Vaccination not found")
	ErrRequired      = apperr.Validation("Pet ID, administered date, and vaccine type are required")
	ErrCannotClear   = apperr.Validation("petId, date and vaccineTypeId cannot be cleared")
	ErrDeleteNoMatch = apperr.Internal("Failed to delete vaccination", nil)
)

type Service struct {
	repo Repository
	mode MergeMode
	now  func() time.Time
}

func NewService(repo Repository, mode MergeMode) *Service {
	if mode == "" {
		mode = MergeReplace
	}
	return &Service{
		repo: repo,
		mode: mode,
		now:  time.Now,
	}
}

// Input guarda por campo si vino en el cuerpo, si vino null o con qué valor.
type Input struct {
	PetID          optional.Value[int64]
	VaccineTypeID  optional.Value[int64]
	Date           optional.Value[time.Time]
	AdministeredBy optional.Value[string]
	Temperature    optional.Value[string]
	Dose           optional.Value[string]
	BatchNumber    optional.Value[string]
	ExpiryDate     optional.Value[time.Time]
	Notes          optional.Value[string]
}

func (s *Service) Mode() MergeMode { return s.mode }

func (s *Service) List(ctx context.Context) ([]Vaccination, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Error fetching vaccinations", err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Vaccination, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Vaccination{}, ErrNotFound
		}
		return Vaccination{}, apperr.Internal("Error fetching vaccination", err)
	}
	return v, nil
}

// Create inserta y devuelve la fila releída de la base, no solo el id.
func (s *Service) Create(ctx context.Context, in Input) (Vaccination, error) {
	if !in.PetID.Present() || in.PetID.V <= 0 ||
		!in.VaccineTypeID.Present() || in.VaccineTypeID.V <= 0 ||
		!in.Date.Present() || in.Date.V.IsZero() {
		return Vaccination{}, ErrRequired
	}

	now := s.now()
	v := Vaccination{
		PetID:            in.PetID.V,
		VaccineTypeID:    in.VaccineTypeID.V,
		AdministeredDate: in.Date.V,
		AdministeredBy:   textOrNil(in.AdministeredBy),
		Temperature:      textOrNil(in.Temperature),
		Dose:             textOrNil(in.Dose),
		BatchNumber:      textOrNil(in.BatchNumber),
		ExpiryDate:       dateOrNil(in.ExpiryDate),
		Notes:            textOrNil(in.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	id, err := s.repo.Create(ctx, v)
	if err != nil {
		return Vaccination{}, apperr.Internal("Error creating vaccination record", err)
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, apperr.Internal("Error creating vaccination record", err)
	}
	return created, nil
}

// Update combina in con la fila guardada según el MergeMode y devuelve la fila resultante.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Vaccination, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, err
	}

	merged, err := merge(s.mode, existing, in)
	if err != nil {
		return Vaccination{}, err
	}
	merged.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, merged); err != nil {
		return Vaccination{}, apperr.Internal("Error updating vaccination record", err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, apperr.Internal("Error updating vaccination record", err)
	}
	return updated, nil
}

// Delete comprueba que exista antes de borrar. Si aun así no se borra ninguna
// fila (otro request la borró en el medio) responde ErrDeleteNoMatch.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("Error deleting vaccination record", err)
	}
	if n == 0 {
		return ErrDeleteNoMatch
	}
	return nil
}

func merge(mode MergeMode, old Vaccination, in Input) (Vaccination, error) {
	out := old
	var ok bool

	if out.PetID, ok = mergeID(mode, in.PetID, old.PetID); !ok {
		return Vaccination{}, ErrCannotClear
	}
	if out.VaccineTypeID, ok = mergeID(mode, in.VaccineTypeID, old.VaccineTypeID); !ok {
		return Vaccination{}, ErrCannotClear
	}

	date := mergeDate(mode, in.Date, &old.AdministeredDate)
	if date == nil {
		return Vaccination{}, ErrCannotClear
	}
	out.AdministeredDate = *date

	out.AdministeredBy = mergeText(mode, in.AdministeredBy, old.AdministeredBy)
	out.Temperature = mergeText(mode, in.Temperature, old.Temperature)
	out.Dose = mergeText(mode, in.Dose, old.Dose)
	out.BatchNumber = mergeText(mode, in.BatchNumber, old.BatchNumber)
	out.ExpiryDate = mergeDate(mode, in.ExpiryDate, old.ExpiryDate)
	out.Notes = mergeText(mode, in.Notes, old.Notes)
	return out, nil
}

// mergeID devuelve false si en modo replace se intenta vaciar un id obligatorio.
func mergeID(mode MergeMode, f optional.Value[int64], old int64) (int64, bool) {
	empty := !f.Present() || f.V <= 0
	if mode == MergeCoalesce {
		if empty {
			return old, true
		}
		return f.V, true
	}
	if !f.Set {
		return old, true
	}
	if empty {
		return 0, false
	}
	return f.V, true
}

func mergeText(mode MergeMode, f optional.Value[string], old *string) *string {
	if mode == MergeCoalesce {
		if !f.Present() || f.V == "" {
			return old
		}
		return f.Ptr()
	}
	if !f.Set {
		return old
	}
	return textOrNil(f)
}

func mergeDate(mode MergeMode, f optional.Value[time.Time], old *time.Time) *time.Time {
	if mode == MergeCoalesce {
		if !f.Present() || f.V.IsZero() {
			return old
		}
		return f.Ptr()
	}
	if !f.Set {
		return old
	}
	return dateOrNil(f)
}

func textOrNil(f optional.Value[string]) *string {
	if !f.Present() || f.V == "" {
		return nil
	}
	return f.Ptr()
}

func dateOrNil(f optional.Value[time.Time]) *time.Time {
	if !f.Present() || f.V.IsZero() {
		return nil
	}
	return f.Ptr()
}
