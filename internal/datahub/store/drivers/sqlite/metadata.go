package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmn-sn/datahub/internal/datahub/store"
)

type metadataRepo struct {
	db dbtx
}

func (r *metadataRepo) ListRegions(ctx context.Context, limit int) ([]string, error) {
	return r.listNames(ctx, "regions", nil, nil, limit)
}

func (r *metadataRepo) ListDepartements(ctx context.Context, region string, limit int) ([]string, error) {
	return r.listNames(ctx, "departements",
		[]string{"region"}, []string{region}, limit)
}

func (r *metadataRepo) ListCommunes(ctx context.Context, region, departement string, limit int) ([]string, error) {
	return r.listNames(ctx, "communes",
		[]string{"region", "departement"}, []string{region, departement}, limit)
}

func (r *metadataRepo) ListQuartiers(ctx context.Context, region, departement, commune string, limit int) ([]string, error) {
	return r.listNames(ctx, "quartiers",
		[]string{"region", "departement", "commune"}, []string{region, departement, commune}, limit)
}

func (r *metadataRepo) ListFilieres(ctx context.Context, limit int) ([]string, error) {
	return r.listNames(ctx, "filieres", nil, nil, limit)
}

func (r *metadataRepo) ListMetiers(ctx context.Context, filiere string, limit int) ([]string, error) {
	return r.listNames(ctx, "metiers", []string{"filiere"}, []string{filiere}, limit)
}

func (r *metadataRepo) UpsertRegion(ctx context.Context, name string) error {
	return r.upsert(ctx, `INSERT INTO regions (name) VALUES (?) ON CONFLICT DO NOTHING`, name)
}

func (r *metadataRepo) UpsertDepartement(ctx context.Context, name, region string) error {
	return r.upsert(ctx,
		`INSERT INTO departements (name, region) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		name, region)
}

func (r *metadataRepo) UpsertCommune(ctx context.Context, name, departement, region string) error {
	return r.upsert(ctx,
		`INSERT INTO communes (name, departement, region) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
		name, departement, region)
}

func (r *metadataRepo) UpsertQuartier(ctx context.Context, name, commune, departement, region string) error {
	return r.upsert(ctx,
		`INSERT INTO quartiers (name, commune, departement, region) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`,
		name, commune, departement, region)
}

func (r *metadataRepo) UpsertFiliere(ctx context.Context, name string) error {
	return r.upsert(ctx, `INSERT INTO filieres (name) VALUES (?) ON CONFLICT DO NOTHING`, name)
}

func (r *metadataRepo) UpsertMetier(ctx context.Context, name, filiere string) error {
	return r.upsert(ctx,
		`INSERT INTO metiers (name, filiere) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		name, filiere)
}

func (r *metadataRepo) upsert(ctx context.Context, query string, args ...any) error {
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// listNames selects the name column filtered by any non-empty parent values,
// alphabetically, capped at limit.
func (r *metadataRepo) listNames(ctx context.Context, table string, cols, vals []string, limit int) ([]string, error) {
	query := `SELECT name FROM ` + table
	var args []any

	var conds []string
	for i, col := range cols {
		if vals[i] != "" {
			conds = append(conds, col+" = ?")
			args = append(args, vals[i])
		}
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}

	query += ` ORDER BY name ASC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", store.ErrTransientRead, table, err)
		}
		if name != "" {
			out = append(out, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrTransientRead, err)
	}

	return out, nil
}
