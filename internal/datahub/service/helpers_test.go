package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/internal/datahub/store/drivers/sqlite"
	"github.com/pmn-sn/datahub/pkg/idx"
	"github.com/pmn-sn/datahub/pkg/jwtx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSigner() *jwtx.Signer {
	return &jwtx.Signer{Secret: []byte("test-secret"), Issuer: "datahub-test", TTL: time.Hour}
}

// seedArtisan inserts a directory record, assigning id and creation time
// when absent. at staggers creation times so newest-first ordering is
// deterministic.
func seedArtisan(t *testing.T, st store.Store, a domain.Artisan, at time.Time) domain.Artisan {
	t.Helper()

	if a.ID == "" {
		a.ID = idx.NewAt(at).String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = at
	}
	require.NoError(t, st.Artisans().CreateArtisan(context.Background(), a))
	return a
}

// seedDirectory loads the demo seed set used across search tests.
func seedDirectory(t *testing.T, st store.Store) []domain.Artisan {
	t.Helper()

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := []domain.Artisan{
		{Region: "Dakar", Departement: "Dakar", Commune: "Plateau", Quartier: "Centre Ville", Filiere: "Textile", Metier: "Couturier", Nom: "Diop", Prenom: "Amadou", Telephone: "770000001"},
		{Region: "Dakar", Departement: "Dakar", Commune: "Medina", Quartier: "Tilene", Filiere: "Textile", Metier: "Tailleur", Nom: "Fall", Prenom: "Moussa", Telephone: "770000002"},
		{Region: "Dakar", Departement: "Pikine", Commune: "Pikine Est", Quartier: "Ainmane", Filiere: "Cuir", Metier: "Cordonnier", Nom: "Sarr", Prenom: "Abdou", Telephone: "770000003"},
		{Region: "Dakar", Departement: "Pikine", Commune: "Pikine Nord", Quartier: "Icotaf", Filiere: "Bâtiment", Metier: "Maçon", Nom: "Gueye", Prenom: "Lamine", Telephone: "770000004"},
		{Region: "Thiès", Departement: "Mbour", Commune: "Saly", Quartier: "Saly Nord", Filiere: "Artisanat d'art", Metier: "Sculpteur", Nom: "Ndiaye", Prenom: "Fatou", Telephone: "770000010"},
		{Region: "Thiès", Departement: "Mbour", Commune: "Joal", Quartier: "Escale", Filiere: "Agroalimentaire", Metier: "Transformateur", Nom: "Faye", Prenom: "Astou", Telephone: "770000011"},
		{Region: "Thiès", Departement: "Thiès", Commune: "Thiès Nord", Quartier: "Nguinth", Filiere: "Électricité", Metier: "Électricien", Nom: "Seck", Prenom: "Modou", Telephone: "770000012"},
		{Region: "Saint-Louis", Departement: "Podor", Commune: "Podor", Quartier: "Mbodiene", Filiere: "Bâtiment", Metier: "Peintre", Nom: "Sow", Prenom: "Oumar", Telephone: "770000020"},
		{Region: "Saint-Louis", Departement: "Saint-Louis", Commune: "Saint-Louis", Quartier: "Ndar Toute", Filiere: "Textile", Metier: "Teinturier", Nom: "Ba", Prenom: "Mariama", Telephone: "770000021"},
		{Region: "Ziguinchor", Departement: "Ziguinchor", Commune: "Ziguinchor", Quartier: "Boucotte", Filiere: "Bois", Metier: "Menuisier", Nom: "Mendy", Prenom: "Jean", Telephone: "770000030"},
	}

	out := make([]domain.Artisan, 0, len(rows))
	for i, a := range rows {
		out = append(out, seedArtisan(t, st, a, base.Add(time.Duration(i)*time.Minute)))
	}
	return out
}

func registerAccount(t *testing.T, svc *AccountService, email, password string) {
	t.Helper()

	require.NoError(t, svc.Register(context.Background(), RegisterRequest{
		ChambreName:     "Chambre de Métiers de Dakar",
		Region:          "Dakar",
		Departement:     "Dakar",
		Nom:             "Ndiaye",
		Prenom:          "Fatou",
		Fonction:        "Secrétaire Général",
		Email:           email,
		Phone:           "770000000",
		Password:        password,
		ConfirmPassword: password,
	}))
}
