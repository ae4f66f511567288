package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/pets"
)

type PetsRepo struct {
	s *Store
}

func NewPetsRepo(s *Store) *PetsRepo {
	return &PetsRepo{s: s}
}

const petColumns = `p.id, p.name, p.type_id, p.breed, p.date_of_birth, p.gender, p.owner_id, p.notes, p.created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(sc scanner, extra ...any) (pets.Pet, error) {
	var p pets.Pet
	var breed, notes sql.NullString
	var dob sql.NullTime
	var gender string

	dest := append([]any{
		&p.ID, &p.Name, &p.TypeID, &breed, &dob, &gender, &p.OwnerID, &notes, &p.CreatedAt,
	}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return pets.Pet{}, err
	}

	p.Breed = fromNullString(breed)
	p.Notes = fromNullString(notes)
	p.DateOfBirth = dateOnlyPtr(fromNullTime(dob))
	p.Gender = pets.Gender(gender)
	return p, nil
}

func ownerJoin(includeOrphans bool) string {
	if includeOrphans {
		return "LEFT JOIN"
	}
	return "JOIN"
}

func (r *PetsRepo) List(ctx context.Context, includeOrphans bool) ([]pets.Listed, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT `+petColumns+`, o.first_name, o.email
		FROM pets p
		`+ownerJoin(includeOrphans)+` owners o ON o.id = p.owner_id
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Listed, 0)
	for rows.Next() {
		var ownerName, ownerEmail sql.NullString
		p, err := scanPet(rows, &ownerName, &ownerEmail)
		if err != nil {
			return nil, err
		}
		out = append(out, pets.Listed{
			Pet:        p,
			OwnerName:  fromNullString(ownerName),
			OwnerEmail: fromNullString(ownerEmail),
		})
	}
	return out, rows.Err()
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64, includeOrphans bool) (pets.Detail, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		SELECT `+petColumns+`, o.first_name, o.last_name
		FROM pets p
		`+ownerJoin(includeOrphans)+` owners o ON o.id = p.owner_id
		WHERE p.id = ?
	`), id)

	var first, last sql.NullString
	p, err := scanPet(row, &first, &last)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Detail{}, pets.ErrNotFound
		}
		return pets.Detail{}, err
	}

	d := pets.Detail{Pet: p}
	if first.Valid {
		name := first.String + " " + last.String
		d.OwnerName = &name
	}
	return d, nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (int64, error) {
	var id int64
	err := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		INSERT INTO pets (name, type_id, breed, date_of_birth, gender, owner_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`),
		p.Name,
		p.TypeID,
		p.Breed,
		toNullTime(dateOnlyPtr(p.DateOfBirth)),
		string(p.Gender),
		p.OwnerID,
		p.Notes,
		p.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, pets.ErrBadReferences
		}
		return 0, err
	}
	return id, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	_, err := r.s.db.ExecContext(ctx, r.s.rebind(`
		UPDATE pets
		SET
			name = ?,
			type_id = ?,
			breed = ?,
			date_of_birth = ?,
			gender = ?,
			owner_id = ?,
			notes = ?
		WHERE id = ?
	`),
		p.Name,
		p.TypeID,
		p.Breed,
		toNullTime(dateOnlyPtr(p.DateOfBirth)),
		string(p.Gender),
		p.OwnerID,
		p.Notes,
		p.ID,
	)
	if err != nil && isForeignKeyViolation(err) {
		return pets.ErrBadReferences
	}
	return err
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`DELETE FROM pets WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PetsRepo) ListTypes(ctx context.Context) ([]pets.PetType, error) {
	rows, err := r.s.db.QueryContext(ctx, `SELECT id, name FROM pet_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.PetType, 0)
	for rows.Next() {
		var t pets.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ pets.Repository = (*PetsRepo)(nil)
