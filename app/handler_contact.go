package main

import (
	"errors"
	"net/http"

	"github.com/asistecare/siteapi/internal/common"
	"github.com/asistecare/siteapi/internal/contactservice"
)

func (app *application) createContactHandler(w http.ResponseWriter, r *http.Request) {
	var input contactservice.CreateContactRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	_, err = app.contactService.CreateContact(r.Context(), &input)
	if err != nil {
		var vErr common.ValidationError
		switch {
		case errors.As(err, &vErr):
			app.failedValidationErrorResponse(w, r, vErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "contact received"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listContactsHandler(w http.ResponseWriter, r *http.Request) {
	contacts, err := app.contactService.GetAllContacts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "contacts": contacts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getContactHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	contact, err := app.contactService.GetContact(r.Context(), id)
	if err != nil {
		var vErr common.ValidationError
		switch {
		case errors.Is(err, contactservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &vErr):
			app.failedValidationErrorResponse(w, r, vErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "contact": contact}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteContactHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.contactService.DeleteContact(r.Context(), id)
	if err != nil {
		var vErr common.ValidationError
		switch {
		case errors.Is(err, contactservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &vErr):
			app.failedValidationErrorResponse(w, r, vErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "contact deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type bulkDeleteContactsRequest struct {
	IDs []int `json:"ids"`
}

func (app *application) bulkDeleteContactsHandler(w http.ResponseWriter, r *http.Request) {
	var input bulkDeleteContactsRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	deleted, err := app.contactService.DeleteContacts(r.Context(), input.IDs)
	if err != nil {
		var vErr common.ValidationError
		switch {
		case errors.As(err, &vErr):
			app.failedValidationErrorResponse(w, r, vErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "deleted": deleted}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
