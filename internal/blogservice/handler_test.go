package blogservice

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/asistecare/siteapi/internal/common"
)

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB, int) {
	db := common.TestDB("file://../../migrations", t)
	c := common.NewCache(time.Minute, 5*time.Minute)
	return NewBlogService(db, c), db, setupTestAuthor(t, db, "author")
}

func setupTestAuthor(t *testing.T, db *sql.DB, username string) int {
	t.Helper()

	query := `
		INSERT INTO admins (username, email, password, name, active)
		VALUES ($1, $2, 'x', 'Test Author', true)
		RETURNING id`

	var id int
	if err := db.QueryRow(query, username, username+"@example.com").Scan(&id); err != nil {
		t.Fatal(err)
	}

	return id
}

func validCreateRequest(slug string, authorID int) *CreatePostRequest {
	return &CreatePostRequest{
		Title:    "Cobertura de salud para nuevos residentes",
		Slug:     slug,
		Excerpt:  "Una guia corta sobre planes de salud disponibles.",
		Content:  strings.Repeat("Los planes de salud cubren consultas, emergencias y medicamentos. ", 3),
		Category: "seguros",
		ReadTime: 4,
		AuthorID: authorID,
	}
}

func TestCreatePost(t *testing.T) {
	s, db, authorID := setupTestEnvironment(t)

	t.Run("valid post", func(t *testing.T) {
		req := validCreateRequest("cobertura-salud", authorID)
		req.Published = true

		post, err := s.CreatePost(context.Background(), req)
		assert.NoError(t, err)
		assert.NotZero(t, post.ID)
		assert.Equal(t, "cobertura-salud", post.Slug)
		assert.Equal(t, 0, post.Views)
		assert.True(t, post.Published)
		assert.Equal(t, "author", post.Author.Username)
		assert.Equal(t, "Test Author", post.Author.Name)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		_, err := s.CreatePost(context.Background(), validCreateRequest("cobertura-salud", authorID))
		assert.ErrorIs(t, err, ErrDuplicateSlug)

		var count int
		err = db.QueryRow(`SELECT COUNT(*) FROM blog_posts WHERE slug = 'cobertura-salud'`).Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("unknown author", func(t *testing.T) {
		_, err := s.CreatePost(context.Background(), validCreateRequest("otro-articulo", 99999))
		assert.ErrorIs(t, err, ErrAuthorNotFound)
	})

	t.Run("default read time", func(t *testing.T) {
		req := validCreateRequest("lectura-defecto", authorID)
		req.ReadTime = 0

		post, err := s.CreatePost(context.Background(), req)
		assert.NoError(t, err)
		assert.Equal(t, DefaultReadTime, post.ReadTime)
	})

	t.Run("script tags are stripped", func(t *testing.T) {
		req := validCreateRequest("contenido-limpio", authorID)
		req.Content += "<script>alert('x')</script>"

		post, err := s.CreatePost(context.Background(), req)
		assert.NoError(t, err)
		assert.NotContains(t, post.Content, "<script>")
	})

	validationCases := []struct {
		name    string
		mutate  func(*CreatePostRequest)
		field   string
		message string
	}{
		{
			name:    "short title",
			mutate:  func(r *CreatePostRequest) { r.Title = "Hola" },
			field:   "title",
			message: "must be between 5 and 200 characters long",
		},
		{
			name:    "uppercase slug",
			mutate:  func(r *CreatePostRequest) { r.Slug = "Mi-Articulo" },
			field:   "slug",
			message: "must only contain lowercase letters, numbers, and hyphens",
		},
		{
			name:    "short excerpt",
			mutate:  func(r *CreatePostRequest) { r.Excerpt = "muy corto" },
			field:   "excerpt",
			message: "must be at least 20 characters long",
		},
		{
			name:    "short content",
			mutate:  func(r *CreatePostRequest) { r.Content = "demasiado corto" },
			field:   "content",
			message: "must be at least 100 characters long",
		},
		{
			name:    "invalid image url",
			mutate:  func(r *CreatePostRequest) { img := "not a url"; r.Image = &img },
			field:   "image",
			message: "must be a valid URL",
		},
		{
			name:    "read time out of range",
			mutate:  func(r *CreatePostRequest) { r.ReadTime = 120 },
			field:   "read_time",
			message: "must be between 1 and 60 minutes",
		},
	}

	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest("articulo-invalido", authorID)
			tc.mutate(req)

			_, err := s.CreatePost(context.Background(), req)

			var vErr common.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.message, vErr.Errors[tc.field])
		})
	}
}

func TestUpdatePost(t *testing.T) {
	s, _, authorID := setupTestEnvironment(t)

	post, err := s.CreatePost(context.Background(), validCreateRequest("primer-articulo", authorID))
	assert.NoError(t, err)

	other, err := s.CreatePost(context.Background(), validCreateRequest("segundo-articulo", authorID))
	assert.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		title := "Titulo actualizado para el articulo"
		updated, err := s.UpdatePost(context.Background(), post.ID, &UpdatePostRequest{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.Equal(t, post.Slug, updated.Slug)
		assert.Equal(t, post.Excerpt, updated.Excerpt)
		assert.Equal(t, post.ReadTime, updated.ReadTime)
	})

	t.Run("publish flag", func(t *testing.T) {
		published := true
		updated, err := s.UpdatePost(context.Background(), post.ID, &UpdatePostRequest{Published: &published})
		assert.NoError(t, err)
		assert.True(t, updated.Published)
	})

	t.Run("slug conflict with another post", func(t *testing.T) {
		slug := other.Slug
		_, err := s.UpdatePost(context.Background(), post.ID, &UpdatePostRequest{Slug: &slug})
		assert.ErrorIs(t, err, ErrDuplicateSlug)
	})

	t.Run("unchanged slug is not a conflict", func(t *testing.T) {
		slug := post.Slug
		_, err := s.UpdatePost(context.Background(), post.ID, &UpdatePostRequest{Slug: &slug})
		assert.NoError(t, err)
	})

	t.Run("invalid field", func(t *testing.T) {
		title := "Ups"
		_, err := s.UpdatePost(context.Background(), post.ID, &UpdatePostRequest{Title: &title})

		var vErr common.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Errors, "title")
	})

	t.Run("unknown post", func(t *testing.T) {
		title := "Titulo para un articulo inexistente"
		_, err := s.UpdatePost(context.Background(), 99999, &UpdatePostRequest{Title: &title})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	s, _, authorID := setupTestEnvironment(t)

	post, err := s.CreatePost(context.Background(), validCreateRequest("articulo-a-borrar", authorID))
	assert.NoError(t, err)

	t.Run("existing post", func(t *testing.T) {
		err := s.DeletePost(context.Background(), post.ID)
		assert.NoError(t, err)

		_, err = s.GetPostByID(context.Background(), post.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("already deleted", func(t *testing.T) {
		err := s.DeletePost(context.Background(), post.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestListPublishedPosts(t *testing.T) {
	s, _, authorID := setupTestEnvironment(t)

	for _, p := range []struct {
		slug      string
		category  string
		published bool
		featured  bool
	}{
		{"salud-uno", "seguros", true, false},
		{"salud-dos", "seguros", true, true},
		{"salud-tres", "vida", true, false},
		{"borrador", "seguros", false, false},
	} {
		req := validCreateRequest(p.slug, authorID)
		req.Category = p.category
		req.Published = p.published
		req.Featured = p.featured

		_, err := s.CreatePost(context.Background(), req)
		assert.NoError(t, err)
	}

	t.Run("drafts never appear", func(t *testing.T) {
		list, err := s.ListPublishedPosts(context.Background(), 1, 10, "", false)
		assert.NoError(t, err)
		assert.Equal(t, 3, list.Pagination.Total)
		for _, p := range list.Posts {
			assert.True(t, p.Published)
			assert.NotEqual(t, "borrador", p.Slug)
		}
	})

	t.Run("featured posts come first", func(t *testing.T) {
		list, err := s.ListPublishedPosts(context.Background(), 1, 10, "", false)
		assert.NoError(t, err)
		assert.Equal(t, "salud-dos", list.Posts[0].Slug)
	})

	t.Run("category filter", func(t *testing.T) {
		list, err := s.ListPublishedPosts(context.Background(), 1, 10, "vida", false)
		assert.NoError(t, err)
		assert.Equal(t, 1, list.Pagination.Total)
		assert.Equal(t, "salud-tres", list.Posts[0].Slug)
	})

	t.Run("featured filter", func(t *testing.T) {
		list, err := s.ListPublishedPosts(context.Background(), 1, 10, "", true)
		assert.NoError(t, err)
		assert.Equal(t, 1, list.Pagination.Total)
	})

	t.Run("pagination math", func(t *testing.T) {
		list, err := s.ListPublishedPosts(context.Background(), 1, 2, "", false)
		assert.NoError(t, err)
		assert.Len(t, list.Posts, 2)
		assert.Equal(t, 3, list.Pagination.Total)
		assert.Equal(t, 2, list.Pagination.TotalPages)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		list, err := s.ListPublishedPosts(context.Background(), 5, 10, "", false)
		assert.NoError(t, err)
		assert.Empty(t, list.Posts)
		assert.Equal(t, 3, list.Pagination.Total)
	})

	t.Run("out of range page and limit are normalized", func(t *testing.T) {
		list, err := s.ListPublishedPosts(context.Background(), -1, 0, "", false)
		assert.NoError(t, err)
		assert.Equal(t, 1, list.Pagination.Page)
		assert.Equal(t, 10, list.Pagination.Limit)
	})
}

func TestListPosts(t *testing.T) {
	s, _, authorID := setupTestEnvironment(t)

	req := validCreateRequest("solo-borrador", authorID)
	_, err := s.CreatePost(context.Background(), req)
	assert.NoError(t, err)

	list, err := s.ListPosts(context.Background(), 1, 10, Filters{})
	assert.NoError(t, err)
	assert.Equal(t, 1, list.Pagination.Total)
	assert.False(t, list.Posts[0].Published)
}

func TestGetPublishedPostBySlug(t *testing.T) {
	s, db, authorID := setupTestEnvironment(t)

	req := validCreateRequest("articulo-publico", authorID)
	req.Published = true
	post, err := s.CreatePost(context.Background(), req)
	assert.NoError(t, err)

	for _, slug := range []string{"relacionado-uno", "relacionado-dos"} {
		r := validCreateRequest(slug, authorID)
		r.Published = true
		_, err := s.CreatePost(context.Background(), r)
		assert.NoError(t, err)
	}

	t.Run("each read increments the view counter", func(t *testing.T) {
		got, _, err := s.GetPublishedPostBySlug(context.Background(), "articulo-publico")
		assert.NoError(t, err)
		assert.Equal(t, 1, got.Views)

		got, _, err = s.GetPublishedPostBySlug(context.Background(), "articulo-publico")
		assert.NoError(t, err)
		assert.Equal(t, 2, got.Views)

		var views int
		err = db.QueryRow(`SELECT views FROM blog_posts WHERE id = $1`, post.ID).Scan(&views)
		assert.NoError(t, err)
		assert.Equal(t, 2, views)
	})

	t.Run("related posts share the category", func(t *testing.T) {
		got, related, err := s.GetPublishedPostBySlug(context.Background(), "articulo-publico")
		assert.NoError(t, err)
		assert.Len(t, related, 2)
		for _, r := range related {
			assert.Equal(t, got.Category, r.Category)
			assert.NotEqual(t, got.ID, r.ID)
		}
	})

	t.Run("unpublished slug is absent", func(t *testing.T) {
		draft := validCreateRequest("borrador-oculto", authorID)
		_, err := s.CreatePost(context.Background(), draft)
		assert.NoError(t, err)

		_, _, err = s.GetPublishedPostBySlug(context.Background(), "borrador-oculto")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("malformed slug", func(t *testing.T) {
		_, _, err := s.GetPublishedPostBySlug(context.Background(), "No Valido!")

		var vErr common.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Errors, "slug")
	})
}
