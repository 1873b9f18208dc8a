package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
	"github.com/pmn-sn/datahub/internal/datahub/store"
)

const userColumns = `id, email, password_hash, role, status, nom, prenom, fonction,
	chambre_name, region, departement, phone, last_active_at, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.UserAccount, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.UserAccount, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.UserAccount) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.Status, u.Nom, u.Prenom, u.Fonction,
		u.ChambreName, u.Region, u.Departement, u.Phone,
		mapOptionalTime(u.LastActiveAt), u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) ListUsers(ctx context.Context, q store.UserListQuery) ([]domain.UserAccount, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any

	switch q.Filter {
	case store.UserFilterPending:
		query += ` WHERE status = ?`
		args = append(args, domain.StatusPending)
	case store.UserFilterActive:
		// Matches the dashboard semantics: everything an admin has already
		// looked at, refused accounts included.
		query += ` WHERE status != ?`
		args = append(args, domain.StatusPending)
	case store.UserFilterOnline:
		query += ` WHERE last_active_at > ?`
		args = append(args, q.ActiveSince)
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, q.Limit)

	return r.queryUsers(ctx, query, args...)
}

func (r *usersRepo) ListAdmins(ctx context.Context) ([]domain.UserAccount, error) {
	return r.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE role IN (?, ?) ORDER BY created_at DESC, id DESC`,
		domain.RoleAdmin, domain.RoleSuperAdmin,
	)
}

func (r *usersRepo) UpdateUserStatus(ctx context.Context, userID string, status string) error {
	return r.updateUser(ctx,
		`UPDATE users SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), userID)
}

func (r *usersRepo) UpdateUserRole(ctx context.Context, userID string, role string) error {
	return r.updateUser(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		role, time.Now().UTC(), userID)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return r.updateUser(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
}

func (r *usersRepo) TouchLastActive(ctx context.Context, email string, at time.Time) error {
	// Unknown emails are deliberately not an error: the heartbeat is
	// best-effort.
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_active_at = ? WHERE email = ?`, at, email)
	return err
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *usersRepo) CountUsersByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE status = ?`, status)
}

func (r *usersRepo) CountUsersActiveSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE last_active_at > ?`, since)
}

func (r *usersRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *usersRepo) updateUser(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) queryUsers(ctx context.Context, query string, args ...any) ([]domain.UserAccount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserAccount
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan user: %v", store.ErrTransientRead, err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrTransientRead, err)
	}

	return out, nil
}

func scanUser(row *sql.Row) (domain.UserAccount, error) {
	var u domain.UserAccount
	var lastActive sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Nom, &u.Prenom, &u.Fonction,
		&u.ChambreName, &u.Region, &u.Departement, &u.Phone,
		&lastActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.UserAccount{}, mapNotFound(err)
	}
	u.LastActiveAt = mapNullTimePtr(lastActive)
	return u, nil
}

func scanUserRow(rows *sql.Rows) (domain.UserAccount, error) {
	var u domain.UserAccount
	var lastActive sql.NullTime
	err := rows.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Nom, &u.Prenom, &u.Fonction,
		&u.ChambreName, &u.Region, &u.Departement, &u.Phone,
		&lastActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.UserAccount{}, err
	}
	u.LastActiveAt = mapNullTimePtr(lastActive)
	return u, nil
}
