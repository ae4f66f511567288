package vaccinations

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/optional"
)

type testRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]Vaccination

	// vanishOnDelete simula otro request que borró la fila entre el chequeo y el DELETE.
	vanishOnDelete bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Vaccination{}}
}

func (r *testRepo) List(ctx context.Context) ([]Vaccination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Vaccination, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Vaccination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return Vaccination{}, apperr.ErrNotFound
	}
	return v, nil
}

func (r *testRepo) Create(ctx context.Context, v Vaccination) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	v.ID = r.nextID
	r.byID[v.ID] = v
	return v.ID, nil
}

func (r *testRepo) Update(ctx context.Context, v Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[v.ID]; ok {
		r.byID[v.ID] = v
	}
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.vanishOnDelete {
		delete(r.byID, id)
		return 0, nil
	}
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seed(t *testing.T, svc *Service) Vaccination {
	t.Helper()
	v, err := svc.Create(context.Background(), Input{
		PetID:          optional.Of[int64](1),
		VaccineTypeID:  optional.Of[int64](3),
		Date:           optional.Of(day("2024-01-15")),
		AdministeredBy: optional.Of("Dr. Ruiz"),
		Temperature:    optional.Of("38.5"),
		Dose:           optional.Of("1 ml"),
	})
	require.NoError(t, err)
	return v
}

func TestService_Create_RequiredFields(t *testing.T) {
	svc := NewService(newTestRepo(), MergeReplace)

	tests := []struct {
		name string
		in   Input
	}{
		{"empty", Input{}},
		{"missing_pet", Input{VaccineTypeID: optional.Of[int64](3), Date: optional.Of(day("2024-01-15"))}},
		{"zero_pet", Input{PetID: optional.Of[int64](0), VaccineTypeID: optional.Of[int64](3), Date: optional.Of(day("2024-01-15"))}},
		{"missing_type", Input{PetID: optional.Of[int64](1), Date: optional.Of(day("2024-01-15"))}},
		{"null_date", Input{PetID: optional.Of[int64](1), VaccineTypeID: optional.Of[int64](3), Date: optional.Null[time.Time]()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrRequired)
			assert.Equal(t, 400, apperr.Status(err))
		})
	}
}

func TestService_Create_ReturnsStoredRow(t *testing.T) {
	svc := NewService(newTestRepo(), MergeReplace)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	v, err := svc.Create(context.Background(), Input{
		PetID:         optional.Of[int64](1),
		VaccineTypeID: optional.Of[int64](3),
		Date:          optional.Of(day("2024-01-15")),
		Notes:         optional.Of(""),
	})
	require.NoError(t, err)

	assert.NotZero(t, v.ID)
	assert.Equal(t, int64(1), v.PetID)
	assert.Equal(t, int64(3), v.VaccineTypeID)
	assert.Nil(t, v.AdministeredBy)
	assert.Nil(t, v.Notes, "empty optional text is stored as null")
	assert.Nil(t, v.ExpiryDate)
	assert.Equal(t, now, v.CreatedAt)
	assert.Equal(t, now, v.UpdatedAt)
}

func TestService_Update_EmptyTemp(t *testing.T) {
	// {temp: ""} sobre una fila con temp "38.5"
	t.Run("replace_clears", func(t *testing.T) {
		svc := NewService(newTestRepo(), MergeReplace)
		v := seed(t, svc)

		got, err := svc.Update(context.Background(), v.ID, Input{Temperature: optional.Of("")})
		require.NoError(t, err)
		assert.Nil(t, got.Temperature)
		assert.Equal(t, "1 ml", *got.Dose, "absent fields keep the stored value")
	})

	t.Run("coalesce_keeps_old_value", func(t *testing.T) {
		svc := NewService(newTestRepo(), MergeCoalesce)
		v := seed(t, svc)

		got, err := svc.Update(context.Background(), v.ID, Input{Temperature: optional.Of("")})
		require.NoError(t, err)
		require.NotNil(t, got.Temperature)
		assert.Equal(t, "38.5", *got.Temperature)
	})
}

func TestService_Update_Merge(t *testing.T) {
	tests := []struct {
		name  string
		mode  MergeMode
		in    Input
		check func(t *testing.T, got Vaccination)
	}{
		{
			name: "replace_overwrites_present_values",
			mode: MergeReplace,
			in:   Input{Temperature: optional.Of("39.1"), ExpiryDate: optional.Of(day("2025-01-15"))},
			check: func(t *testing.T, got Vaccination) {
				assert.Equal(t, "39.1", *got.Temperature)
				assert.Equal(t, day("2025-01-15"), *got.ExpiryDate)
			},
		},
		{
			name: "replace_null_clears",
			mode: MergeReplace,
			in:   Input{AdministeredBy: optional.Null[string]()},
			check: func(t *testing.T, got Vaccination) {
				assert.Nil(t, got.AdministeredBy)
			},
		},
		{
			name: "coalesce_null_keeps",
			mode: MergeCoalesce,
			in:   Input{AdministeredBy: optional.Null[string](), PetID: optional.Of[int64](0)},
			check: func(t *testing.T, got Vaccination) {
				assert.Equal(t, "Dr. Ruiz", *got.AdministeredBy)
				assert.Equal(t, int64(1), got.PetID)
			},
		},
		{
			name: "coalesce_overwrites_non_empty",
			mode: MergeCoalesce,
			in:   Input{PetID: optional.Of[int64](7), Date: optional.Of(day("2024-02-01"))},
			check: func(t *testing.T, got Vaccination) {
				assert.Equal(t, int64(7), got.PetID)
				assert.Equal(t, day("2024-02-01"), got.AdministeredDate)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newTestRepo(), tt.mode)
			v := seed(t, svc)

			got, err := svc.Update(context.Background(), v.ID, tt.in)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_Update_ReplaceRejectsClearingRequired(t *testing.T) {
	svc := NewService(newTestRepo(), MergeReplace)
	v := seed(t, svc)

	for name, in := range map[string]Input{
		"pet_zero":  {PetID: optional.Of[int64](0)},
		"type_null": {VaccineTypeID: optional.Null[int64]()},
		"date_null": {Date: optional.Null[time.Time]()},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), v.ID, in)
			assert.ErrorIs(t, err, ErrCannotClear)
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), MergeReplace)

	_, err := svc.Update(context.Background(), 9, Input{Notes: optional.Of("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		repo := newTestRepo()
		svc := NewService(repo, MergeReplace)
		v := seed(t, svc)

		require.NoError(t, svc.Delete(context.Background(), v.ID))
		assert.Empty(t, repo.byID)
	})

	t.Run("missing", func(t *testing.T) {
		svc := NewService(newTestRepo(), MergeReplace)
		assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrNotFound)
	})

	t.Run("row_vanished_between_check_and_delete", func(t *testing.T) {
		repo := newTestRepo()
		svc := NewService(repo, MergeReplace)
		v := seed(t, svc)
		repo.vanishOnDelete = true

		err := svc.Delete(context.Background(), v.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		assert.Equal(t, "Failed to delete vaccination", apperr.Message(err, ""))
	})
}

func TestService_List_OrderedByIDDesc(t *testing.T) {
	svc := NewService(newTestRepo(), MergeReplace)
	a := seed(t, svc)
	b := seed(t, svc)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].ID)
	assert.Equal(t, a.ID, items[1].ID)
}

func TestParseMergeMode(t *testing.T) {
	m, err := ParseMergeMode("")
	require.NoError(t, err)
	assert.Equal(t, MergeReplace, m)

	m, err = ParseMergeMode(" Coalesce ")
	require.NoError(t, err)
	assert.Equal(t, MergeCoalesce, m)

	_, err = ParseMergeMode("merge")
	assert.Error(t, err)
}
