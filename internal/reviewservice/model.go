package reviewservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("record not found")

func newReviewModel(db *sql.DB) *ReviewModel {
	return &ReviewModel{db: db}
}

func (m *ReviewModel) insert(ctx context.Context, r *Review) error {
	query := `
		INSERT INTO reviews (name, email, rating, comment, approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return m.db.QueryRowContext(ctx, query, r.Name, r.Email, r.Rating, r.Comment, r.Approved).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
}

// getApproved returns only the reviews visible on the public site, newest
// first. The approved constraint lives here, not in the caller.
func (m *ReviewModel) getApproved(ctx context.Context) ([]PublicReview, error) {
	query := `
		SELECT id, name, rating, comment, created_at
		FROM reviews
		WHERE approved = true
		ORDER BY created_at DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []PublicReview{}
	for rows.Next() {
		var r PublicReview
		if err := rows.Scan(&r.ID, &r.Name, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (m *ReviewModel) getAll(ctx context.Context) ([]Review, error) {
	query := `
		SELECT id, name, email, rating, comment, approved, created_at, updated_at
		FROM reviews
		ORDER BY created_at DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Rating, &r.Comment, &r.Approved, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (m *ReviewModel) approve(ctx context.Context, id int) (*Review, error) {
	query := `
		UPDATE reviews
		SET approved = true, updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, rating, comment, approved, created_at, updated_at`

	var r Review
	err := m.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Name, &r.Email, &r.Rating, &r.Comment, &r.Approved, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &r, nil
}

func (m *ReviewModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM reviews
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
