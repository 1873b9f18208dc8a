package importer

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestImporter(t *testing.T) *Importer {
	t.Helper()

	im, err := Open(":memory:", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return im
}

func TestImporter_Import(t *testing.T) {
	im := newTestImporter(t)

	input := strings.Join([]string{
		"REGION;DEPARTEMENT;COMMUNE;QUARTIER;FILIERE_PMN;TELEPHONE;PRENOM;NOM;FILIERE",
		"Dakar;Dakar;Plateau;Centre Ville;Textile;770000001;Amadou;Diop;Couturier",
		"Dakar;Dakar;Medina;Tilene;Textile;770000002;Moussa;Fall;Tailleur",
		"Thiès;Mbour;Saly;Saly Nord;Artisanat d'art;770000010;Fatou;Ndiaye;Sculpteur",
		"broken;row",
	}, "\n")

	stats, err := im.Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, stats.Inserted)
	require.Equal(t, 1, stats.Skipped)

	var artisans []Artisan
	require.NoError(t, im.DB.Order("nom").Find(&artisans).Error)
	require.Len(t, artisans, 3)
	require.Equal(t, "Diop", artisans[0].Nom)
	require.NotEmpty(t, artisans[0].ID)

	var regions []Region
	require.NoError(t, im.DB.Order("name").Find(&regions).Error)
	require.Len(t, regions, 2)
	require.Equal(t, "Dakar", regions[0].Name)

	var metiers []Metier
	require.NoError(t, im.DB.Order("name").Find(&metiers).Error)
	require.Len(t, metiers, 3)
	require.Equal(t, "Couturier", metiers[0].Name)
	require.Equal(t, "Textile", metiers[0].Filiere)
}

func TestImporter_ImportIsAdditive(t *testing.T) {
	im := newTestImporter(t)

	row := "Dakar;Dakar;Plateau;Centre Ville;Textile;770000001;Amadou;Diop;Couturier"

	_, err := im.Import(strings.NewReader(row))
	require.NoError(t, err)
	_, err = im.Import(strings.NewReader(row))
	require.NoError(t, err)

	// Artisan rows are never de-duplicated; metadata sets are.
	var artisanCount, regionCount int64
	require.NoError(t, im.DB.Model(&Artisan{}).Count(&artisanCount).Error)
	require.NoError(t, im.DB.Model(&Region{}).Count(&regionCount).Error)
	require.EqualValues(t, 2, artisanCount)
	require.EqualValues(t, 1, regionCount)
}

func TestImporter_SkipsParentlessMetadata(t *testing.T) {
	im := newTestImporter(t)

	// No region, so the departement has no parent chain; no filiere, so the
	// metier has none either.
	_, err := im.Import(strings.NewReader(";Dakar;Plateau;Centre Ville;;770000001;Amadou;Diop;Couturier"))
	require.NoError(t, err)

	var depCount, metierCount int64
	require.NoError(t, im.DB.Model(&Departement{}).Count(&depCount).Error)
	require.NoError(t, im.DB.Model(&Metier{}).Count(&metierCount).Error)
	require.Zero(t, depCount)
	require.Zero(t, metierCount)
}

func TestDialectorFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "postgres", dialectorFor("postgres://u:p@localhost/db").Name())
	require.Equal(t, "postgres", dialectorFor("postgresql://u:p@localhost/db").Name())
	require.Equal(t, "sqlite", dialectorFor("datahub.db").Name())
	require.Equal(t, "sqlite", dialectorFor(":memory:").Name())
}
