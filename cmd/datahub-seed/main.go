package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/service"
	"github.com/pmn-sn/datahub/internal/datahub/store/drivers/sqlite"
	"github.com/pmn-sn/datahub/pkg/idx"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

// demoArtisans is the demonstration directory loaded into empty databases.
var demoArtisans = []domain.Artisan{
	{Region: "Dakar", Departement: "Dakar", Commune: "Plateau", Quartier: "Centre Ville", Filiere: "Textile", Metier: "Couturier", Nom: "Diop", Prenom: "Amadou", Telephone: "771234501"},
	{Region: "Dakar", Departement: "Dakar", Commune: "Medina", Quartier: "Tilene", Filiere: "Textile", Metier: "Tailleur", Nom: "Fall", Prenom: "Moussa", Telephone: "771234502"},
	{Region: "Dakar", Departement: "Pikine", Commune: "Pikine Est", Quartier: "Ainmane", Filiere: "Cuir", Metier: "Cordonnier", Nom: "Sarr", Prenom: "Abdou", Telephone: "771234503"},
	{Region: "Dakar", Departement: "Pikine", Commune: "Pikine Nord", Quartier: "Icotaf", Filiere: "Bâtiment", Metier: "Maçon", Nom: "Gueye", Prenom: "Lamine", Telephone: "771234504"},
	{Region: "Thiès", Departement: "Mbour", Commune: "Saly", Quartier: "Saly Nord", Filiere: "Artisanat d'art", Metier: "Sculpteur", Nom: "Ndiaye", Prenom: "Fatou", Telephone: "771234505"},
	{Region: "Thiès", Departement: "Mbour", Commune: "Joal", Quartier: "Escale", Filiere: "Agroalimentaire", Metier: "Transformateur", Nom: "Faye", Prenom: "Astou", Telephone: "771234506"},
	{Region: "Thiès", Departement: "Thiès", Commune: "Thiès Nord", Quartier: "Nguinth", Filiere: "Électricité", Metier: "Électricien", Nom: "Seck", Prenom: "Modou", Telephone: "771234507"},
	{Region: "Saint-Louis", Departement: "Podor", Commune: "Podor", Quartier: "Mbodiene", Filiere: "Bâtiment", Metier: "Peintre", Nom: "Sow", Prenom: "Oumar", Telephone: "771234508"},
	{Region: "Saint-Louis", Departement: "Saint-Louis", Commune: "Saint-Louis", Quartier: "Ndar Toute", Filiere: "Textile", Metier: "Teinturier", Nom: "Ba", Prenom: "Mariama", Telephone: "771234509"},
	{Region: "Ziguinchor", Departement: "Ziguinchor", Commune: "Ziguinchor", Quartier: "Boucotte", Filiere: "Bois", Metier: "Menuisier", Nom: "Mendy", Prenom: "Jean", Telephone: "771234510"},
}

func main() {
	_ = godotenv.Load()

	logger := slogx.New(slogx.Config{
		Service: "datahub-seed",
		Env:     envOrDefault("ENV", "dev"),
		Level:   envOrDefault("LOG_LEVEL", "info"),
		Format:  envOrDefault("LOG_FORMAT", "text"),
	})

	databaseFile := envOrDefault("DATAHUB_DATABASE_FILE", "datahub.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", databaseFile)

	st, err := sqlite.NewStore(dsn)
	if err != nil {
		logger.Error("cannot open database", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	empty, err := st.Artisans().IsEmpty(ctx)
	if err != nil {
		logger.Error("cannot inspect directory", "err", err)
		os.Exit(1)
	}
	if !empty {
		logger.Info("directory already has data, nothing to do")
		return
	}

	now := time.Now().UTC()
	for i, a := range demoArtisans {
		at := now.Add(time.Duration(i) * time.Second)
		a.ID = idx.NewAt(at).String()
		a.CreatedAt = at
		if err := st.Artisans().CreateArtisan(ctx, a); err != nil {
			logger.Error("seed insert failed", "nom", a.Nom, "err", err)
			os.Exit(1)
		}
	}

	// Derive the metadata sets so the filter dropdowns work immediately.
	sync := service.NewMetadataSyncService(st, logger, 0)
	if err := sync.Sync(ctx); err != nil {
		logger.Error("metadata sync failed", "err", err)
		os.Exit(1)
	}

	logger.Info("seeded demo directory", "artisans", len(demoArtisans))
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
