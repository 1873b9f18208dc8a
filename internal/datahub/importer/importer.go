package importer

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pmn-sn/datahub/pkg/idx"
)

// batchSize bounds one insert statement during bulk loads.
const batchSize = 50

// Importer bulk-loads directory records and their derived metadata sets into
// a target database. It writes the same tables the service reads, over gorm
// so the same loader works against sqlite and postgres targets.
type Importer struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

// Open connects to dsn, choosing the dialector from its shape: postgres://
// (or postgresql://) selects the postgres driver, anything else is treated
// as a sqlite file path.
func Open(dsn string, log *slog.Logger) (*Importer, error) {
	dialector := dialectorFor(dsn)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open target database: %w", err)
	}

	if err := db.AutoMigrate(
		&Artisan{}, &Region{}, &Departement{}, &Commune{},
		&Quartier{}, &Filiere{}, &Metier{},
	); err != nil {
		return nil, fmt.Errorf("prepare target schema: %w", err)
	}

	return &Importer{DB: db, Logger: log}, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// ImportStats summarizes one completed import.
type ImportStats struct {
	Inserted int
	Skipped  int
}

// Import parses the export in r and loads it. Artisan rows are inserted in
// batches and intentionally not de-duplicated: the source files may carry
// genuine homonyms. Metadata values are upserted with set semantics.
func (im *Importer) Import(r io.Reader) (ImportStats, error) {
	parsed, err := ParseCSV(r)
	if err != nil {
		return ImportStats{}, fmt.Errorf("parse export: %w", err)
	}
	if parsed.Skipped > 0 {
		im.Logger.Warn("skipped malformed rows", "count", parsed.Skipped)
	}

	now := time.Now().UTC()
	artisans := make([]Artisan, 0, len(parsed.Records))
	for _, rec := range parsed.Records {
		artisans = append(artisans, Artisan{
			ID:          idx.NewAt(now).String(),
			Region:      rec.Region,
			Departement: rec.Departement,
			Commune:     rec.Commune,
			Quartier:    rec.Quartier,
			Filiere:     rec.Filiere,
			Metier:      rec.Metier,
			Nom:         rec.Nom,
			Prenom:      rec.Prenom,
			Telephone:   rec.Telephone,
			CreatedAt:   now,
		})
	}

	if len(artisans) > 0 {
		if err := im.DB.CreateInBatches(artisans, batchSize).Error; err != nil {
			return ImportStats{}, fmt.Errorf("insert artisans: %w", err)
		}
	}

	if err := im.upsertMetadata(parsed.Records); err != nil {
		return ImportStats{}, err
	}

	im.Logger.Info("import complete",
		"inserted", len(artisans),
		"skipped", parsed.Skipped,
	)

	return ImportStats{Inserted: len(artisans), Skipped: parsed.Skipped}, nil
}

// upsertMetadata derives the distinct location and trade sets referenced by
// records and upserts each level, skipping values whose parents are blank.
func (im *Importer) upsertMetadata(records []Record) error {
	regions := map[string]struct{}{}
	departements := map[Departement]struct{}{}
	communes := map[Commune]struct{}{}
	quartiers := map[Quartier]struct{}{}
	filieres := map[string]struct{}{}
	metiers := map[Metier]struct{}{}

	for _, rec := range records {
		if rec.Region != "" {
			regions[rec.Region] = struct{}{}
		}
		if rec.Departement != "" && rec.Region != "" {
			departements[Departement{Name: rec.Departement, Region: rec.Region}] = struct{}{}
		}
		if rec.Commune != "" && rec.Departement != "" && rec.Region != "" {
			communes[Commune{Name: rec.Commune, Departement: rec.Departement, Region: rec.Region}] = struct{}{}
		}
		if rec.Quartier != "" && rec.Commune != "" && rec.Departement != "" && rec.Region != "" {
			quartiers[Quartier{
				Name: rec.Quartier, Commune: rec.Commune,
				Departement: rec.Departement, Region: rec.Region,
			}] = struct{}{}
		}
		if rec.Filiere != "" {
			filieres[rec.Filiere] = struct{}{}
		}
		if rec.Metier != "" && rec.Filiere != "" {
			metiers[Metier{Name: rec.Metier, Filiere: rec.Filiere}] = struct{}{}
		}
	}

	doNothing := clause.OnConflict{DoNothing: true}

	for name := range regions {
		if err := im.DB.Clauses(doNothing).Create(&Region{Name: name}).Error; err != nil {
			return fmt.Errorf("upsert region: %w", err)
		}
	}
	for d := range departements {
		row := d
		if err := im.DB.Clauses(doNothing).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert departement: %w", err)
		}
	}
	for c := range communes {
		row := c
		if err := im.DB.Clauses(doNothing).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert commune: %w", err)
		}
	}
	for q := range quartiers {
		row := q
		if err := im.DB.Clauses(doNothing).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert quartier: %w", err)
		}
	}
	for name := range filieres {
		if err := im.DB.Clauses(doNothing).Create(&Filiere{Name: name}).Error; err != nil {
			return fmt.Errorf("upsert filiere: %w", err)
		}
	}
	for m := range metiers {
		row := m
		if err := im.DB.Clauses(doNothing).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert metier: %w", err)
		}
	}

	return nil
}
