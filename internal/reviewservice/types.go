package reviewservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/asistecare/siteapi/internal/common"
)

type Review struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicReview is the approved-review shape exposed to anonymous callers.
// The reviewer's email never leaves the admin surface.
type PublicReview struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewService struct {
	m      *ReviewModel
	mb     common.MessageProducer
	c      *common.Cache
	logger *slog.Logger
}

type ReviewModel struct {
	db *sql.DB
}
