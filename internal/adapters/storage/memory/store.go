package memory

import (
	"sync"

	"vet-clinic/internal/domain/owners"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vaccinations"
)

// Store guarda todas las tablas en memoria detrás de un único mutex, para que
// el borrado en cascada de owners sea atómico igual que en la base.
// Se usa cuando no hay DB_DSN configurado y en los tests end-to-end.
type Store struct {
	mu sync.RWMutex

	ownerSeq int64
	petSeq   int64
	typeSeq  int64
	vaccSeq  int64

	owners       map[int64]owners.Owner
	pets         map[int64]pets.Pet
	petTypes     []pets.PetType
	vaccinations map[int64]vaccinations.Vaccination
}

// NewStore crea un store vacío con los tipos de mascota por defecto.
func NewStore() *Store {
	s := &Store{
		owners:       make(map[int64]owners.Owner),
		pets:         make(map[int64]pets.Pet),
		vaccinations: make(map[int64]vaccinations.Vaccination),
	}
	for _, name := range pets.DefaultTypes {
		s.typeSeq++
		s.petTypes = append(s.petTypes, pets.PetType{ID: s.typeSeq, Name: name})
	}
	return s
}

// SetPetTypes reemplaza la tabla de lookup (útil para probar la tabla vacía).
func (s *Store) SetPetTypes(types []pets.PetType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.petTypes = append([]pets.PetType(nil), types...)
}

func (s *Store) Owners() owners.Repository { return &ownerRepo{s: s} }

func (s *Store) Pets() pets.Repository { return &petRepo{s: s} }

func (s *Store) Vaccinations() vaccinations.Repository { return &vaccinationRepo{s: s} }
