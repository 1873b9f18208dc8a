package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/pkg/accentx"
)

const artisanColumns = `id, region, departement, commune, quartier, filiere, metier, nom, prenom, telephone, created_at`

// searchColumns are the nine fields the free-text term is matched against.
var searchColumns = []string{
	"nom", "prenom", "telephone",
	"region", "departement", "commune", "quartier",
	"filiere", "metier",
}

type artisansRepo struct {
	db dbtx
}

func (r *artisansRepo) SearchArtisans(ctx context.Context, q store.ArtisanQuery) ([]domain.Artisan, error) {
	where, args := artisanPredicate(q)

	// ULIDs sort by creation time, so id breaks created_at ties while
	// keeping the newest-first contract.
	query := `SELECT ` + artisanColumns + ` FROM artisans` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Artisan
	for rows.Next() {
		var a domain.Artisan
		if err := rows.Scan(
			&a.ID, &a.Region, &a.Departement, &a.Commune, &a.Quartier,
			&a.Filiere, &a.Metier, &a.Nom, &a.Prenom, &a.Telephone, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan artisan: %v", store.ErrTransientRead, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrTransientRead, err)
	}

	return out, nil
}

func (r *artisansRepo) CountArtisans(ctx context.Context, q store.ArtisanQuery) (int, error) {
	where, args := artisanPredicate(q)

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artisans`+where, args...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *artisansRepo) CreateArtisan(ctx context.Context, a domain.Artisan) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO artisans (`+artisanColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Region, a.Departement, a.Commune, a.Quartier,
		a.Filiere, a.Metier, a.Nom, a.Prenom, a.Telephone, a.CreatedAt,
	)
	return err
}

func (r *artisansRepo) MetadataTuples(ctx context.Context) ([]store.MetadataTuple, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT region, departement, commune, quartier, filiere, metier FROM artisans`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.MetadataTuple
	for rows.Next() {
		var t store.MetadataTuple
		if err := rows.Scan(&t.Region, &t.Departement, &t.Commune, &t.Quartier, &t.Filiere, &t.Metier); err != nil {
			return nil, fmt.Errorf("%w: scan metadata tuple: %v", store.ErrTransientRead, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrTransientRead, err)
	}

	return out, nil
}

func (r *artisansRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artisans`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// artisanPredicate builds the WHERE clause shared by SearchArtisans and
// CountArtisans: every active equality filter ANDed together, and when a
// search term is present, a disjunction of accent-insensitive GLOB matches
// across the nine searchable fields. Every OR branch therefore still
// satisfies every active filter.
func artisanPredicate(q store.ArtisanQuery) (string, []any) {
	var conds []string
	var args []any

	eq := func(col, val string) {
		if val != "" {
			conds = append(conds, col+" = ?")
			args = append(args, val)
		}
	}
	eq("region", q.Filters.Region)
	eq("departement", q.Filters.Departement)
	eq("commune", q.Filters.Commune)
	eq("quartier", q.Filters.Quartier)
	eq("filiere", q.Filters.Filiere)
	eq("metier", q.Filters.Metier)

	if term := strings.TrimSpace(q.Search); term != "" {
		pattern := accentx.ContainsPattern(term)
		ors := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			ors[i] = col + " GLOB ?"
			args = append(args, pattern)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
