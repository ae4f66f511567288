package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/owners"
	"vet-clinic/internal/domain/pets"
)

type OwnersRepo struct {
	s *Store
}

func NewOwnersRepo(s *Store) *OwnersRepo {
	return &OwnersRepo{s: s}
}

const ownerColumns = `o.id, o.first_name, o.last_name, o.email, o.telephone, o.address, o.city, o.created_at`

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Summary, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT `+ownerColumns+`,
			(SELECT COUNT(*) FROM pets p WHERE p.owner_id = o.id) AS pets_count
		FROM owners o
		ORDER BY o.created_at DESC, o.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Summary, 0)
	for rows.Next() {
		var sm owners.Summary
		var tel, addr, city sql.NullString
		if err := rows.Scan(
			&sm.ID, &sm.FirstName, &sm.LastName, &sm.Email,
			&tel, &addr, &city,
			&sm.CreatedAt,
			&sm.PetsCount,
		); err != nil {
			return nil, err
		}
		sm.Telephone = fromNullString(tel)
		sm.Address = fromNullString(addr)
		sm.City = fromNullString(city)
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		SELECT `+ownerColumns+`
		FROM owners o
		WHERE o.id = ?
	`), id)

	var o owners.Owner
	var tel, addr, city sql.NullString
	if err := row.Scan(
		&o.ID, &o.FirstName, &o.LastName, &o.Email,
		&tel, &addr, &city,
		&o.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	o.Telephone = fromNullString(tel)
	o.Address = fromNullString(addr)
	o.City = fromNullString(city)
	return o, nil
}

func (r *OwnersRepo) ListPets(ctx context.Context, ownerID int64) ([]pets.Pet, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(`
		SELECT `+petColumns+`
		FROM pets p
		WHERE p.owner_id = ?
		ORDER BY p.created_at DESC, p.id DESC
	`), ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (int64, error) {
	var id int64
	err := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		INSERT INTO owners (first_name, last_name, email, telephone, address, city, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`),
		o.FirstName,
		o.LastName,
		o.Email,
		o.Telephone,
		o.Address,
		o.City,
		o.CreatedAt,
	).Scan(&id)
	return id, err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	_, err := r.s.db.ExecContext(ctx, r.s.rebind(`
		UPDATE owners
		SET
			first_name = ?,
			last_name = ?,
			email = ?,
			telephone = ?,
			address = ?,
			city = ?
		WHERE id = ?
	`),
		o.FirstName,
		o.LastName,
		o.Email,
		o.Telephone,
		o.Address,
		o.City,
		o.ID,
	)
	return err
}

// Delete borra primero las mascotas y después el dueño en la misma transacción.
// Si el dueño no existía se hace rollback y no se borra ninguna mascota.
func (r *OwnersRepo) Delete(ctx context.Context, id int64) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM pets WHERE owner_id = ?`), id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM owners WHERE id = ?`), id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return owners.ErrNotFound
		}
		return nil
	})
}

var _ owners.Repository = (*OwnersRepo)(nil)
