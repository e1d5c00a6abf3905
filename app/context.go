package main

import (
	"context"
	"net/http"

	"github.com/asistecare/siteapi/internal/authservice"
)

type contextKey string

const adminContextKey = contextKey("admin")

func (app *application) createAdminContext(r *http.Request, admin *authservice.Admin) *http.Request {
	ctx := context.WithValue(r.Context(), adminContextKey, admin)
	return r.WithContext(ctx)
}

// getAdminContext returns the authenticated administrator, or nil for an
// anonymous request.
func (app *application) getAdminContext(r *http.Request) *authservice.Admin {
	admin, ok := r.Context().Value(adminContextKey).(*authservice.Admin)
	if !ok {
		return nil
	}
	return admin
}
