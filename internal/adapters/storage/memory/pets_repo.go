package memory

import (
	"context"
	"sort"

	"vet-clinic/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

// sortPets ordena por created_at desc (id desc para desempatar), igual que las queries SQL.
func sortPets(ps []pets.Pet) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID > ps[j].ID
	})
}

func (r *petRepo) List(ctx context.Context, includeOrphans bool) ([]pets.Listed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]pets.Pet, 0, len(r.s.pets))
	for _, p := range r.s.pets {
		all = append(all, p)
	}
	sortPets(all)

	out := make([]pets.Listed, 0, len(all))
	for _, p := range all {
		o, ok := r.s.owners[p.OwnerID]
		if !ok && !includeOrphans {
			continue
		}
		l := pets.Listed{Pet: p}
		if ok {
			name, email := o.FirstName, o.Email
			l.OwnerName = &name
			l.OwnerEmail = &email
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *petRepo) GetByID(ctx context.Context, id int64, includeOrphans bool) (pets.Detail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Detail{}, pets.ErrNotFound
	}
	o, hasOwner := r.s.owners[p.OwnerID]
	if !hasOwner && !includeOrphans {
		return pets.Detail{}, pets.ErrNotFound
	}

	d := pets.Detail{Pet: p}
	if hasOwner {
		name := o.FirstName + " " + o.LastName
		d.OwnerName = &name
	}
	return d, nil
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.referencesExist(p) {
		return 0, pets.ErrBadReferences
	}
	r.s.petSeq++
	p.ID = r.s.petSeq
	r.s.pets[p.ID] = p
	return p.ID, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.pets[p.ID]
	if !ok {
		return nil
	}
	if !r.s.referencesExist(p) {
		return pets.ErrBadReferences
	}
	p.CreatedAt = old.CreatedAt
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return false, nil
	}
	delete(r.s.pets, id)
	return true, nil
}

func (r *petRepo) ListTypes(ctx context.Context) ([]pets.PetType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]pets.PetType{}, r.s.petTypes...), nil
}

// referencesExist replica las FK de pets (type_id, owner_id). Llamar con el lock tomado.
func (s *Store) referencesExist(p pets.Pet) bool {
	if _, ok := s.owners[p.OwnerID]; !ok {
		return false
	}
	for _, t := range s.petTypes {
		if t.ID == p.TypeID {
			return true
		}
	}
	return false
}
