package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so repositories run the same
// queries inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func newQueries(db dbtx) *queries { return &queries{db: db} }

type roleRow struct {
	ID          string
	Name        string
	Permissions string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type userRow struct {
	ID        string
	Name      string
	RoleID    string
	RoleName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const roleColumns = `id, name, permissions, created_at, updated_at`

const userColumns = `u.id, u.name, u.role_id, r.name, u.created_at, u.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(s rowScanner) (roleRow, error) {
	var r roleRow
	err := s.Scan(&r.ID, &r.Name, &r.Permissions, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func scanUser(s rowScanner) (userRow, error) {
	var u userRow
	err := s.Scan(&u.ID, &u.Name, &u.RoleID, &u.RoleName, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (q *queries) getRoleByID(ctx context.Context, id string) (roleRow, error) {
	return scanRole(q.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE id = ?`, id))
}

func (q *queries) getRoleByName(ctx context.Context, name string) (roleRow, error) {
	return scanRole(q.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE name = ?`, name))
}

func (q *queries) listAllRoles(ctx context.Context) ([]roleRow, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+roleColumns+` FROM roles ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []roleRow
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *queries) createRole(ctx context.Context, r roleRow) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO roles (id, name, permissions, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Permissions, r.CreatedAt, r.UpdatedAt)
	return err
}

func (q *queries) updateRolePermissions(ctx context.Context, id, perms string, at time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE roles SET permissions = ?, updated_at = ? WHERE id = ?`, perms, at, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *queries) deleteRole(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *queries) countRoles(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&n)
	return n, err
}

func (q *queries) listAllUsers(ctx context.Context) ([]userRow, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users u JOIN roles r ON r.id = u.role_id ORDER BY u.created_at, u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []userRow
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (q *queries) getUserByID(ctx context.Context, id string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = ?`, id))
}

func (q *queries) createUser(ctx context.Context, u userRow) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO users (id, name, role_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.RoleID, u.CreatedAt, u.UpdatedAt)
	return err
}

func (q *queries) deleteUser(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *queries) countUsersByRole(ctx context.Context, roleID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role_id = ?`, roleID).Scan(&n)
	return n, err
}
