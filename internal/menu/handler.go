// Package menu provides HTTP handlers for the menu catalog.
package menu

import (
	"encoding/json"
	"net/http"

	"github.com/bistroboss/bistro-api/internal/domain"
	"github.com/bistroboss/bistro-api/internal/pkg/ctxlog"
	"github.com/bistroboss/bistro-api/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles HTTP requests for the menu module.
type Handler struct {
	repo      Repository
	validator *validator.Validate
}

// NewHandler creates a new menu handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(),
	}
}

// RegisterRoutes registers menu routes. Only item creation is admin-gated;
// updates and deletes are open, preserving the deployed contract.
func (h *Handler) RegisterRoutes(r chi.Router, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/menu", h.List)
	r.Get("/menu/{id}", h.Get)
	r.With(requireAuth, requireAdmin).Post("/menu", h.Create)
	r.Patch("/menu/{id}", h.Update)
	r.Delete("/menu/{id}", h.Delete)
}

// ItemRequest represents the request body for creating or updating a menu item.
type ItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"required"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
}

// ToDomain converts the request to a domain model.
func (r *ItemRequest) ToDomain() *domain.MenuItem {
	return &domain.MenuItem{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Recipe:   r.Recipe,
		Image:    r.Image,
	}
}

// List handles GET /menu.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, items)
}

// Get handles GET /menu/{id}. A missing document is reported as null, not
// as an error.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, item)
}

// Create handles POST /menu.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	result, err := h.repo.Insert(r.Context(), req.ToDomain())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// Update handles PATCH /menu/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	result, err := h.repo.Update(r.Context(), id, req.ToDomain())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// Delete handles DELETE /menu/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	result, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	ctxlog.FromContext(r.Context()).Error("menu store operation failed", "error", err)
	httputil.Message(w, http.StatusInternalServerError, "internal error")
}

func parseID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
