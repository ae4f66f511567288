package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"vet-clinic/internal/domain/pets"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		id BIGSERIAL PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		telephone VARCHAR(50),
		address VARCHAR(255),
		city VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pet_types (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		type_id BIGINT NOT NULL REFERENCES pet_types(id),
		breed VARCHAR(100),
		date_of_birth DATE,
		gender VARCHAR(10) NOT NULL DEFAULT 'unknown' CHECK (gender IN ('male', 'female', 'unknown')),
		owner_id BIGINT NOT NULL REFERENCES owners(id),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_owner_id ON pets(owner_id)`,
	`CREATE TABLE IF NOT EXISTS vaccinations (
		id BIGSERIAL PRIMARY KEY,
		pet_id BIGINT NOT NULL,
		vaccine_type_id BIGINT NOT NULL,
		administered_date DATE NOT NULL,
		administered_by VARCHAR(100),
		temperature VARCHAR(20),
		dose VARCHAR(50),
		batch_number VARCHAR(100),
		expiry_date DATE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vaccinations_pet_id ON vaccinations(pet_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		telephone TEXT,
		address TEXT,
		city TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS pet_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		type_id INTEGER NOT NULL REFERENCES pet_types(id),
		breed TEXT,
		date_of_birth DATE,
		gender TEXT NOT NULL DEFAULT 'unknown' CHECK (gender IN ('male', 'female', 'unknown')),
		owner_id INTEGER NOT NULL REFERENCES owners(id),
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_owner_id ON pets(owner_id)`,
	`CREATE TABLE IF NOT EXISTS vaccinations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pet_id INTEGER NOT NULL,
		vaccine_type_id INTEGER NOT NULL,
		administered_date DATE NOT NULL,
		administered_by TEXT,
		temperature TEXT,
		dose TEXT,
		batch_number TEXT,
		expiry_date DATE,
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vaccinations_pet_id ON vaccinations(pet_id)`,
}

// Migrate crea las tablas que falten y carga los tipos de mascota por defecto
// si la tabla pet_types está vacía. Es idempotente.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := postgresSchema
	if s.driver == DriverSQLite {
		stmts = sqliteSchema
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return s.seedPetTypes(ctx)
}

func (s *Store) seedPetTypes(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pet_types`).Scan(&n); err != nil {
		return fmt.Errorf("seed pet types: %w", err)
	}
	if n > 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, name := range pets.DefaultTypes {
			if _, err := tx.ExecContext(ctx, s.rebind(`INSERT INTO pet_types (name) VALUES (?)`), name); err != nil {
				return fmt.Errorf("seed pet type %s: %w", name, err)
			}
		}
		return nil
	})
}
