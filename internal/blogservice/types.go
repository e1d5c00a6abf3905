package blogservice

import (
	"database/sql"
	"time"

	"github.com/asistecare/siteapi/internal/common"
)

type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
	// Content is stored in Markdown format.
	Content         string    `json:"content"`
	Image           *string   `json:"image"`
	Category        string    `json:"category"`
	Tags            *string   `json:"tags"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
	ReadTime        int       `json:"read_time"`
	Views           int       `json:"views"`
	Published       bool      `json:"published"`
	Featured        bool      `json:"featured"`
	Author          Author    `json:"author"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Author is the public slice of the owning administrator record.
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Filters narrow a post listing. Nil fields are omitted from the WHERE
// clause; the public surface pins Published to true before querying.
type Filters struct {
	Published *bool
	Category  string
	Featured  *bool
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type PostList struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}

type BlogModel struct {
	db *sql.DB
}
