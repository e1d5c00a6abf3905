package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/asistecare/siteapi/internal/authservice"
	"github.com/asistecare/siteapi/internal/common"
)

const sessionCookieName = "admin_token"

func (app *application) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   app.config.Environment == "production",
	}
}

type loginAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginAdminHandler(w http.ResponseWriter, r *http.Request) {
	var input loginAdminRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	admin, token, err := app.authService.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		var vErr common.ValidationError
		switch {
		case errors.Is(err, authservice.ErrInvalidCredentials):
			app.invalidCredentialsErrorResponse(w, r)
		case errors.As(err, &vErr):
			app.failedValidationErrorResponse(w, r, vErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.SetCookie(w, app.sessionCookie(token, authservice.SessionTokenTime))

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "admin": admin}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// verifyAdminHandler answers the admin panel's session probe. The middleware
// has already resolved the cookie into an admin by the time it runs.
func (app *application) verifyAdminHandler(w http.ResponseWriter, r *http.Request) {
	admin := app.getAdminContext(r)

	err := app.writeJSON(w, http.StatusOK, envelope{"success": true, "admin": admin}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// logoutAdminHandler clears the session cookie. Tokens are stateless, so
// there is nothing to clean up server side.
func (app *application) logoutAdminHandler(w http.ResponseWriter, r *http.Request) {
	cookie := app.sessionCookie("", 0)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	err := app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "logged out"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
