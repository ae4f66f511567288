package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	s *Store
}

func NewVaccinationsRepo(s *Store) *VaccinationsRepo {
	return &VaccinationsRepo{s: s}
}

const vaccinationColumns = `id, pet_id, vaccine_type_id, administered_date, administered_by,
	temperature, dose, batch_number, expiry_date, notes, created_at, updated_at`

func scanVaccination(sc scanner) (vaccinations.Vaccination, error) {
	var v vaccinations.Vaccination
	var by, temp, dose, batch, notes sql.NullString
	var expiry sql.NullTime

	if err := sc.Scan(
		&v.ID, &v.PetID, &v.VaccineTypeID,
		&v.AdministeredDate, &by,
		&temp, &dose, &batch, &expiry, &notes,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return vaccinations.Vaccination{}, err
	}

	v.AdministeredDate = dateOnly(v.AdministeredDate)
	v.AdministeredBy = fromNullString(by)
	v.Temperature = fromNullString(temp)
	v.Dose = fromNullString(dose)
	v.BatchNumber = fromNullString(batch)
	v.ExpiryDate = dateOnlyPtr(fromNullTime(expiry))
	v.Notes = fromNullString(notes)
	return v, nil
}

func (r *VaccinationsRepo) List(ctx context.Context) ([]vaccinations.Vaccination, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id int64) (vaccinations.Vaccination, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE id = ?
	`), id)

	v, err := scanVaccination(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vaccinations.Vaccination{}, vaccinations.ErrNotFound
		}
		return vaccinations.Vaccination{}, err
	}
	return v, nil
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) (int64, error) {
	var id int64
	err := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		INSERT INTO vaccinations (
			pet_id, vaccine_type_id, administered_date, administered_by,
			temperature, dose, batch_number, expiry_date, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`),
		v.PetID,
		v.VaccineTypeID,
		dateOnly(v.AdministeredDate),
		v.AdministeredBy,
		v.Temperature,
		v.Dose,
		v.BatchNumber,
		toNullTime(dateOnlyPtr(v.ExpiryDate)),
		v.Notes,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.s.db.ExecContext(ctx, r.s.rebind(`
		UPDATE vaccinations
		SET
			pet_id = ?,
			vaccine_type_id = ?,
			administered_date = ?,
			administered_by = ?,
			temperature = ?,
			dose = ?,
			batch_number = ?,
			expiry_date = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`),
		v.PetID,
		v.VaccineTypeID,
		dateOnly(v.AdministeredDate),
		v.AdministeredBy,
		v.Temperature,
		v.Dose,
		v.BatchNumber,
		toNullTime(dateOnlyPtr(v.ExpiryDate)),
		v.Notes,
		v.UpdatedAt,
		v.ID,
	)
	return err
}

func (r *VaccinationsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`DELETE FROM vaccinations WHERE id = ?`), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ vaccinations.Repository = (*VaccinationsRepo)(nil)
