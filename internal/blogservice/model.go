package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateSlug  = errors.New("duplicate slug")
	ErrAuthorNotFound = errors.New("author does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// UniqueViolationError is a helper function to check if the error is a unique
// constraint error on the named constraint.
func UniqueViolationError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// ForeignKeyError is a helper function to check if the error is a foreign key
// constraint error on the named constraint.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

const postColumns = `
	bp.id, bp.title, bp.slug, bp.excerpt, bp.content, bp.image, bp.category,
	bp.tags, bp.meta_title, bp.meta_description, bp.read_time, bp.views,
	bp.published, bp.featured, bp.created_at, bp.updated_at,
	a.id, a.username, a.name`

func scanPost(row interface{ Scan(...any) error }) (*Post, error) {
	var p Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Image, &p.Category,
		&p.Tags, &p.MetaTitle, &p.MetaDescription, &p.ReadTime, &p.Views,
		&p.Published, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.Name,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *BlogModel) insert(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO blog_posts (title, slug, excerpt, content, image, category, tags, meta_title, meta_description, read_time, published, featured, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, views, created_at, updated_at`

	args := []any{
		p.Title, p.Slug, p.Excerpt, p.Content, p.Image, p.Category,
		p.Tags, p.MetaTitle, p.MetaDescription, p.ReadTime,
		p.Published, p.Featured, p.Author.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Views, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		switch {
		case UniqueViolationError(err, "blog_posts_slug_key"):
			return ErrDuplicateSlug
		case ForeignKeyError(err, "blog_posts_author_id_fkey"):
			return ErrAuthorNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) getPostByID(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT` + postColumns + `
		FROM blog_posts bp
		JOIN admins a ON bp.author_id = a.id
		WHERE bp.id = $1`

	post, err := scanPost(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return post, nil
}

// slugExists reports whether another post already owns the slug. excludeID
// skips the post itself on update.
func (m *BlogModel) slugExists(ctx context.Context, slug string, excludeID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blog_posts WHERE slug = $1 AND id != $2
		)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (m *BlogModel) update(ctx context.Context, p *Post) error {
	query := `
		UPDATE blog_posts
		SET title = $1, slug = $2, excerpt = $3, content = $4, image = $5,
			category = $6, tags = $7, meta_title = $8, meta_description = $9,
			read_time = $10, published = $11, featured = $12, updated_at = now()
		WHERE id = $13
		RETURNING updated_at`

	args := []any{
		p.Title, p.Slug, p.Excerpt, p.Content, p.Image, p.Category,
		p.Tags, p.MetaTitle, p.MetaDescription, p.ReadTime,
		p.Published, p.Featured, p.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&p.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case UniqueViolationError(err, "blog_posts_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM blog_posts
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

// list composes the filters conjunctively and returns one page of posts plus
// the unpaginated total. featuredFirst selects the public ordering.
func (m *BlogModel) list(ctx context.Context, f Filters, limit, offset int, featuredFirst bool) ([]Post, int, error) {
	conditions := []string{}
	args := []any{}

	if f.Published != nil {
		args = append(args, *f.Published)
		conditions = append(conditions, fmt.Sprintf("bp.published = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("bp.category = $%d", len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		conditions = append(conditions, fmt.Sprintf("bp.featured = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	order := "ORDER BY bp.created_at DESC"
	if featuredFirst {
		order = "ORDER BY bp.featured DESC, bp.created_at DESC"
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM blog_posts bp %s`, where)

	var total int
	if err := m.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM blog_posts bp
		JOIN admins a ON bp.author_id = a.id
		%s
		%s
		LIMIT $%d OFFSET $%d`, postColumns, where, order, len(args)+1, len(args)+2)

	args = append(args, limit, offset)

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// incrementViews bumps the counter atomically at the storage layer so
// concurrent readers never under-count, and returns the post id.
func (m *BlogModel) incrementViews(ctx context.Context, slug string) (int, error) {
	query := `
		UPDATE blog_posts
		SET views = views + 1
		WHERE slug = $1 AND published = true
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return id, nil
}

// getRelated returns the newest published posts sharing a category, excluding
// the post itself.
func (m *BlogModel) getRelated(ctx context.Context, category string, excludeID, limit int) ([]Post, error) {
	query := `
		SELECT` + postColumns + `
		FROM blog_posts bp
		JOIN admins a ON bp.author_id = a.id
		WHERE bp.published = true AND bp.category = $1 AND bp.id != $2
		ORDER BY bp.created_at DESC
		LIMIT $3`

	rows, err := m.db.QueryContext(ctx, query, category, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
