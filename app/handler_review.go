package main

import (
	"errors"
	"net/http"

	"github.com/asistecare/siteapi/internal/common"
	"github.com/asistecare/siteapi/internal/reviewservice"
)

func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var input reviewservice.CreateReviewRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	_, err = app.reviewService.CreateReview(r.Context(), &input)
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

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "review received and pending approval"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listPublicReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := app.reviewService.GetApprovedReviews(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "reviews": reviews}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listAdminReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := app.reviewService.GetAllReviews(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "reviews": reviews}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) approveReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	review, err := app.reviewService.ApproveReview(r.Context(), id)
	if err != nil {
		var vErr common.ValidationError
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &vErr):
			app.failedValidationErrorResponse(w, r, vErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "review": review}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.reviewService.DeleteReview(r.Context(), id)
	if err != nil {
		var vErr common.ValidationError
		switch {
		case errors.Is(err, reviewservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &vErr):
			app.failedValidationErrorResponse(w, r, vErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "review deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
