package memory

import (
	"context"
	"sort"

	"vet-clinic/internal/domain/vaccinations"
)

type vaccinationRepo struct {
	s *Store
}

func (r *vaccinationRepo) List(ctx context.Context) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0, len(r.s.vaccinations))
	for _, v := range r.s.vaccinations {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *vaccinationRepo) GetByID(ctx context.Context, id int64) (vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vaccinations[id]
	if !ok {
		return vaccinations.Vaccination{}, vaccinations.ErrNotFound
	}
	return v, nil
}

func (r *vaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.vaccSeq++
	v.ID = r.s.vaccSeq
	r.s.vaccinations[v.ID] = v
	return v.ID, nil
}

func (r *vaccinationRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.vaccinations[v.ID]
	if !ok {
		return nil
	}
	v.CreatedAt = old.CreatedAt
	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *vaccinationRepo) Delete(ctx context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccinations[id]; !ok {
		return 0, nil
	}
	delete(r.s.vaccinations, id)
	return 1, nil
}
