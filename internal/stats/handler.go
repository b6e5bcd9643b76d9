// Package stats serves admin dashboard aggregations.
package stats

import (
	"net/http"

	"github.com/bistroboss/bistro-api/internal/pkg/ctxlog"
	"github.com/bistroboss/bistro-api/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP requests for the stats module.
type Handler struct {
	repo Repository
}

// NewHandler creates a new stats handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers stats routes. Both are admin-only.
func (h *Handler) RegisterRoutes(r chi.Router, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Get("/admin-stats", h.Summary)
		r.Get("/order-stats", h.OrdersByCategory)
	})
}

// Summary handles GET /admin-stats.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.repo.Summary(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, summary)
}

// OrdersByCategory handles GET /order-stats.
func (h *Handler) OrdersByCategory(w http.ResponseWriter, r *http.Request) {
	byCategory, err := h.repo.OrdersByCategory(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, byCategory)
}

func (h *Handler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	ctxlog.FromContext(r.Context()).Error("stats query failed", "error", err)
	httputil.Message(w, http.StatusInternalServerError, "internal error")
}
