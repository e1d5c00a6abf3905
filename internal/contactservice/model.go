package contactservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var ErrRecordNotFound = errors.New("record not found")

func newContactModel(db *sql.DB) *ContactModel {
	return &ContactModel{db: db}
}

func (m *ContactModel) insert(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (name, phone, email, postal_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return m.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Email, c.PostalCode).Scan(&c.ID, &c.CreatedAt)
}

func (m *ContactModel) getByID(ctx context.Context, id int) (*Contact, error) {
	query := `
		SELECT id, name, phone, email, postal_code, created_at
		FROM contacts
		WHERE id = $1`

	var c Contact
	err := m.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.PostalCode, &c.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *ContactModel) getAll(ctx context.Context) ([]Contact, error) {
	query := `
		SELECT id, name, phone, email, postal_code, created_at
		FROM contacts
		ORDER BY created_at DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.PostalCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contacts, nil
}

func (m *ContactModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM contacts
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// deleteMany removes a batch of leads inside one transaction so a bulk
// cleanup either lands fully or not at all. Returns how many rows went away.
func (m *ContactModel) deleteMany(ctx context.Context, ids []int) (int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	query := `
		DELETE FROM contacts
		WHERE id = ANY($1)`

	res, err := tx.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return int(rows), nil
}
