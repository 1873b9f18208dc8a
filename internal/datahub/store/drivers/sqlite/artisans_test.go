package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/pkg/idx"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func insertArtisan(t *testing.T, st *Store, a domain.Artisan, at time.Time) domain.Artisan {
	t.Helper()

	a.ID = idx.NewAt(at).String()
	a.CreatedAt = at
	require.NoError(t, st.Artisans().CreateArtisan(context.Background(), a))
	return a
}

func TestArtisans_SearchMatchesAccentVariants(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	insertArtisan(t, st, domain.Artisan{Filiere: "Électricité", Nom: "Seck"}, base)
	insertArtisan(t, st, domain.Artisan{Filiere: "Bâtiment", Nom: "Gueye"}, base.Add(time.Minute))
	insertArtisan(t, st, domain.Artisan{Metier: "Maçon", Nom: "Fall"}, base.Add(2*time.Minute))

	cases := []struct {
		term string
		nom  string
	}{
		{"electricite", "Seck"},
		{"ELECTRICITE", "Seck"},
		{"Électricité", "Seck"},
		{"électricité", "Seck"},
		{"batiment", "Gueye"},
		{"macon", "Fall"},
		{"maçon", "Fall"},
	}
	for _, tc := range cases {
		got, err := st.Artisans().SearchArtisans(ctx, store.ArtisanQuery{Search: tc.term, Limit: 10})
		require.NoError(t, err, tc.term)
		require.Len(t, got, 1, tc.term)
		require.Equal(t, tc.nom, got[0].Nom, tc.term)
	}
}

func TestArtisans_SearchTreatsGlobMetacharsLiterally(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	insertArtisan(t, st, domain.Artisan{Nom: "A*B", Telephone: "770000001"}, base)
	insertArtisan(t, st, domain.Artisan{Nom: "AxB", Telephone: "770000002"}, base.Add(time.Minute))

	got, err := st.Artisans().SearchArtisans(ctx, store.ArtisanQuery{Search: "A*B", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "A*B", got[0].Nom)
}

func TestArtisans_OrderingIsStable(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()

	// Same created_at for every row: the id tie-break keeps page slices
	// disjoint anyway.
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for range 6 {
		insertArtisan(t, st, domain.Artisan{Region: "Dakar"}, at)
	}

	first, err := st.Artisans().SearchArtisans(ctx, store.ArtisanQuery{Limit: 3, Offset: 0})
	require.NoError(t, err)
	second, err := st.Artisans().SearchArtisans(ctx, store.ArtisanQuery{Limit: 3, Offset: 3})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, a := range append(first, second...) {
		require.False(t, seen[a.ID])
		seen[a.ID] = true
	}
	require.Len(t, seen, 6)
}

func TestArtisans_CountIgnoresPaging(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := range 5 {
		insertArtisan(t, st, domain.Artisan{Region: "Thiès"}, base.Add(time.Duration(i)*time.Minute))
	}

	q := store.ArtisanQuery{
		Filters: domain.ArtisanFilters{Region: "Thiès"},
		Limit:   2,
		Offset:  4,
	}
	total, err := st.Artisans().CountArtisans(ctx, q)
	require.NoError(t, err)
	require.Equal(t, 5, total)
}

func TestUsers_ConstraintAndNotFoundMapping(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := domain.UserAccount{
		ID:           idx.New().String(),
		Email:        "cm@example.sn",
		PasswordHash: "x",
		Role:         domain.RoleChambreMetier,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	dup := user
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	_, err := st.Users().GetUserByEmail(ctx, "ghost@example.sn")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, st.Users().UpdateUserStatus(ctx, "no-such-id", domain.StatusActive), store.ErrNotFound)
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()
	boom := func(tx store.Tx) error {
		a := domain.Artisan{ID: idx.New().String(), Nom: "Diop", CreatedAt: time.Now().UTC()}
		if err := tx.Artisans().CreateArtisan(ctx, a); err != nil {
			return err
		}
		return context.Canceled
	}

	require.ErrorIs(t, st.WithTx(ctx, boom), context.Canceled)

	empty, err := st.Artisans().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)
}
