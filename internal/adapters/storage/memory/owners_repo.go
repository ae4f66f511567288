package memory

import (
	"context"
	"sort"

	"vet-clinic/internal/domain/owners"
	"vet-clinic/internal/domain/pets"
)

type ownerRepo struct {
	s *Store
}

func (r *ownerRepo) List(ctx context.Context) ([]owners.Summary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[int64]int, len(r.s.owners))
	for _, p := range r.s.pets {
		counts[p.OwnerID]++
	}

	out := make([]owners.Summary, 0, len(r.s.owners))
	for _, o := range r.s.owners {
		out = append(out, owners.Summary{Owner: o, PetsCount: counts[o.ID]})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.owners[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) ListPets(ctx context.Context, ownerID int64) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sortPets(out)
	return out, nil
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.ownerSeq++
	o.ID = r.s.ownerSeq
	r.s.owners[o.ID] = o
	return o.ID, nil
}

func (r *ownerRepo) Update(ctx context.Context, o owners.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.owners[o.ID]
	if !ok {
		return nil
	}
	o.CreatedAt = old.CreatedAt
	r.s.owners[o.ID] = o
	return nil
}

func (r *ownerRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[id]; !ok {
		return owners.ErrNotFound
	}
	for pid, p := range r.s.pets {
		if p.OwnerID == id {
			delete(r.s.pets, pid)
		}
	}
	delete(r.s.owners, id)
	return nil
}
