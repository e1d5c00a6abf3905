package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/health", app.healthCheckHandler)

	// admin session
	router.HandlerFunc(http.MethodPost, "/api/admin/auth", app.loginAdminHandler)
	router.HandlerFunc(http.MethodGet, "/api/admin/auth", app.requireAdmin(app.verifyAdminHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/auth", app.logoutAdminHandler)

	// public blog
	router.HandlerFunc(http.MethodGet, "/api/blog", app.listPublicPostsHandler)
	router.HandlerFunc(http.MethodGet, "/api/blog/:slug", app.getPublicPostHandler)

	// admin blog
	router.HandlerFunc(http.MethodGet, "/api/admin/blog", app.requireAdmin(app.listAdminPostsHandler))
	router.HandlerFunc(http.MethodPost, "/api/admin/blog", app.requireAdmin(app.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/api/admin/blog/:id", app.requireAdmin(app.getAdminPostHandler))
	router.HandlerFunc(http.MethodPut, "/api/admin/blog/:id", app.requireAdmin(app.updatePostHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/blog/:id", app.requireAdmin(app.deletePostHandler))

	// reviews
	router.HandlerFunc(http.MethodPost, "/api/reviews", app.createReviewHandler)
	router.HandlerFunc(http.MethodGet, "/api/reviews", app.listPublicReviewsHandler)
	router.HandlerFunc(http.MethodGet, "/api/admin/reviews", app.requireAdmin(app.listAdminReviewsHandler))
	router.HandlerFunc(http.MethodPatch, "/api/admin/reviews/:id/approve", app.requireAdmin(app.approveReviewHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/reviews/:id", app.requireAdmin(app.deleteReviewHandler))

	// leads
	router.HandlerFunc(http.MethodPost, "/api/contact", app.createContactHandler)
	router.HandlerFunc(http.MethodGet, "/api/admin/contacts", app.requireAdmin(app.listContactsHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/contacts", app.requireAdmin(app.bulkDeleteContactsHandler))
	router.HandlerFunc(http.MethodGet, "/api/admin/contacts/:id", app.requireAdmin(app.getContactHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/contacts/:id", app.requireAdmin(app.deleteContactHandler))

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
