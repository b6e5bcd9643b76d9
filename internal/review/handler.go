// Package review provides the read-only HTTP surface for customer reviews.
package review

import (
	"net/http"

	"github.com/bistroboss/bistro-api/internal/pkg/ctxlog"
	"github.com/bistroboss/bistro-api/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP requests for the review module.
type Handler struct {
	repo Repository
}

// NewHandler creates a new review handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers review routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reviews", h.List)
}

// List handles GET /reviews.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.repo.List(r.Context())
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("review store operation failed", "error", err)
		httputil.Message(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.JSON(w, http.StatusOK, reviews)
}
