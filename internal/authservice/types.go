package authservice

import (
	"database/sql"
	"time"
)

// SessionTokenTime is the fixed lifetime of an admin session token. Tokens
// are stateless: a leaked token stays valid until expiry, there is no
// revocation list.
const SessionTokenTime = 24 * time.Hour

type AuthService struct {
	m      *AdminModel
	secret []byte
}

type AdminModel struct {
	db *sql.DB
}

type Admin struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  Password  `json:"-"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}
