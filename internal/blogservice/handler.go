package blogservice

import (
	"context"
	"database/sql"

	"github.com/asistecare/siteapi/internal/common"
)

// RelatedPostLimit caps how many same-category posts accompany a public
// single-post response.
const RelatedPostLimit = 3

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreatePostRequest struct {
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	Excerpt         string  `json:"excerpt"`
	Content         string  `json:"content"`
	Image           *string `json:"image"`
	Category        string  `json:"category"`
	Tags            *string `json:"tags"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	ReadTime        int     `json:"read_time"`
	Published       bool    `json:"published"`
	Featured        bool    `json:"featured"`
	AuthorID        int     `json:"author_id"`
}

// UpdatePostRequest carries a partial update: nil fields keep their stored
// value.
type UpdatePostRequest struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Excerpt         *string `json:"excerpt"`
	Content         *string `json:"content"`
	Image           *string `json:"image"`
	Category        *string `json:"category"`
	Tags            *string `json:"tags"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	ReadTime        *int    `json:"read_time"`
	Published       *bool   `json:"published"`
	Featured        *bool   `json:"featured"`
}

// CreatePost validates and persists a new post and returns the stored row
// joined with its author. A slug already in use fails with ErrDuplicateSlug
// before any write happens.
func (s *BlogService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	if req.ReadTime == 0 {
		req.ReadTime = DefaultReadTime
	}

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSlug(v, req.Slug)
	validateExcerpt(v, req.Excerpt)
	validateContent(v, req.Content)
	validateImage(v, req.Image)
	validateCategory(v, req.Category)
	validateReadTime(v, req.ReadTime)
	validateInt(v, req.AuthorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	taken, err := s.m.slugExists(ctx, req.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	post := &Post{
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		Content:         sanitizeMarkdown(req.Content),
		Image:           req.Image,
		Category:        req.Category,
		Tags:            req.Tags,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		ReadTime:        req.ReadTime,
		Published:       req.Published,
		Featured:        req.Featured,
		Author:          Author{ID: req.AuthorID},
	}

	if err := s.m.insert(ctx, post); err != nil {
		return nil, err
	}

	s.c.Flush()

	return s.m.getPostByID(ctx, post.ID)
}

// GetPostByID returns a post regardless of its published state. Admin surface
// only.
func (s *BlogService) GetPostByID(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPostByID(ctx, id)
}

// UpdatePost applies a partial update. Slug uniqueness is re-checked only
// when the slug actually changes.
func (s *BlogService) UpdatePost(ctx context.Context, id int, req *UpdatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post, err := s.m.getPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slugChanged := false
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != post.Slug {
		post.Slug = *req.Slug
		slugChanged = true
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = sanitizeMarkdown(*req.Content)
	}
	if req.Image != nil {
		post.Image = req.Image
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.MetaTitle != nil {
		post.MetaTitle = req.MetaTitle
	}
	if req.MetaDescription != nil {
		post.MetaDescription = req.MetaDescription
	}
	if req.ReadTime != nil {
		post.ReadTime = *req.ReadTime
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}

	validateTitle(v, post.Title)
	validateSlug(v, post.Slug)
	validateExcerpt(v, post.Excerpt)
	validateContent(v, post.Content)
	validateImage(v, post.Image)
	validateCategory(v, post.Category)
	validateReadTime(v, post.ReadTime)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if slugChanged {
		taken, err := s.m.slugExists(ctx, post.Slug, post.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateSlug
		}
	}

	if err := s.m.update(ctx, post); err != nil {
		return nil, err
	}

	s.c.Flush()

	return post, nil
}

// DeletePost removes a post unconditionally. There is no soft delete.
func (s *BlogService) DeletePost(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.delete(ctx, id); err != nil {
		return err
	}

	s.c.Flush()

	return nil
}

// ListPosts is the admin listing: unfiltered by default, newest first,
// narrowed only by explicitly supplied filters.
func (s *BlogService) ListPosts(ctx context.Context, page, limit int, f Filters) (*PostList, error) {
	page, limit = normalizePage(page, limit)

	posts, total, err := s.m.list(ctx, f, limit, (page-1)*limit, false)
	if err != nil {
		return nil, err
	}

	return newPostList(posts, page, limit, total), nil
}

// ListPublishedPosts is the public listing. The published constraint is
// always applied here, never left to the caller. Results are cached per page.
func (s *BlogService) ListPublishedPosts(ctx context.Context, page, limit int, category string, featured bool) (*PostList, error) {
	page, limit = normalizePage(page, limit)

	key := common.CacheKeyPublishedPosts(page, limit, category, featured)
	if cached, ok := s.c.Get(key); ok {
		return cached.(*PostList), nil
	}

	published := true
	f := Filters{Published: &published, Category: category}
	if featured {
		f.Featured = &featured
	}

	posts, total, err := s.m.list(ctx, f, limit, (page-1)*limit, true)
	if err != nil {
		return nil, err
	}

	list := newPostList(posts, page, limit, total)
	s.c.Set(key, list)

	return list, nil
}

// GetPublishedPostBySlug serves the public single-post read: it bumps the
// view counter, then returns the post with the incremented count plus up to
// three related posts from the same category. Unpublished slugs are treated
// as absent.
func (s *BlogService) GetPublishedPostBySlug(ctx context.Context, slug string) (*Post, []Post, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	id, err := s.m.incrementViews(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	post, err := s.m.getPostByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	related, err := s.m.getRelated(ctx, post.Category, post.ID, RelatedPostLimit)
	if err != nil {
		return nil, nil, err
	}

	return post, related, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func newPostList(posts []Post, page, limit, total int) *PostList {
	totalPages := (total + limit - 1) / limit

	return &PostList{
		Posts: posts,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
