package contactservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/asistecare/siteapi/internal/common"
)

// Contact is a write-once lead record captured from the public contact form.
type Contact struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
}

type ContactService struct {
	m      *ContactModel
	mb     common.MessageProducer
	logger *slog.Logger
}

type ContactModel struct {
	db *sql.DB
}
