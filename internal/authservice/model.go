package authservice

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("admin not found")

func newAdminModel(db *sql.DB) *AdminModel {
	return &AdminModel{db: db}
}

// getActiveByUsername is the login lookup. Inactive accounts are treated the
// same as absent ones.
func (m *AdminModel) getActiveByUsername(ctx context.Context, username string) (*Admin, error) {
	query := `
		SELECT id, username, email, name, password, active, created_at, updated_at
		FROM admins
		WHERE username = $1 AND active = true`

	var a Admin

	err := m.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.Email, &a.Name, &a.Password.hash, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &a, nil
}

func (m *AdminModel) getActiveByID(ctx context.Context, id int) (*Admin, error) {
	query := `
		SELECT id, username, email, name, active, created_at, updated_at
		FROM admins
		WHERE id = $1 AND active = true`

	var a Admin

	err := m.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Username, &a.Email, &a.Name, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &a, nil
}

// upsertAdmin provisions an administrator account. An existing username is
// left untouched so reseeding never overwrites a rotated password.
func (m *AdminModel) upsertAdmin(ctx context.Context, a *Admin) error {
	query := `
		INSERT INTO admins (username, email, password, name, active)
		VALUES ($1, $2, $3, $4, true)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, a.Username, a.Email, a.Password.hash, a.Name).Scan(&a.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return m.db.QueryRowContext(ctx, `SELECT id FROM admins WHERE username = $1`, a.Username).Scan(&a.ID)
		default:
			return err
		}
	}

	return nil
}
