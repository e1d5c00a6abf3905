package authservice

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrStaleAccount       = errors.New("admin account no longer active")
)

func NewAuthService(db *sql.DB, secret string) *AuthService {
	return &AuthService{
		m:      newAdminModel(db),
		secret: []byte(secret),
	}
}

// Login verifies the credentials against the admins table and issues a signed
// session token with a fixed 24 hour expiry. Unknown usernames, inactive
// accounts and wrong passwords all collapse into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Admin, string, error) {
	v := NewLoginValidator(username, password)
	if !v.Valid() {
		return nil, "", v.ValidationError()
	}

	admin, err := s.m.getActiveByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, "", ErrInvalidCredentials
		default:
			return nil, "", err
		}
	}

	ok, err := admin.Password.compare(password)
	if err != nil {
		return nil, "", err
	}

	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.signToken(admin, time.Now())
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

// VerifyToken checks the token signature and expiry and then re-checks the
// carried admin id against the database. A token for a deleted or deactivated
// account fails with ErrStaleAccount even when the signature is still good.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*Admin, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	admin, err := s.m.getActiveByID(ctx, claims.AdminID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrStaleAccount
		default:
			return nil, err
		}
	}

	return admin, nil
}

// ProvisionAdmin creates the administrator account used to log into the admin
// panel. Used by the seed command; an already provisioned username is kept
// as is.
func (s *AuthService) ProvisionAdmin(ctx context.Context, username, email, password, name string) (*Admin, error) {
	v := NewLoginValidator(username, password)
	validateEmail(v, email)
	v.Check(name != "", "name", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	admin := Admin{
		Username: username,
		Email:    email,
		Name:     name,
		Active:   true,
	}

	if err := admin.Password.Set(password); err != nil {
		return nil, err
	}

	if err := s.m.upsertAdmin(ctx, &admin); err != nil {
		return nil, err
	}

	return &admin, nil
}
