// Package cart provides HTTP handlers for shopping cart entries.
package cart

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

// Handler handles HTTP requests for the cart module.
type Handler struct {
	repo      Repository
	validator *validator.Validate
}

// NewHandler creates a new cart handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(),
	}
}

// RegisterRoutes registers cart routes. All of them require authentication.
func (h *Handler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/cart", h.Create)
		r.Get("/cart", h.List)
		r.Delete("/cart/{id}", h.Delete)
	})
}

// ItemRequest represents the request body for adding a cart entry.
type ItemRequest struct {
	MenuID string  `json:"menuId" validate:"required"`
	Email  string  `json:"email" validate:"required,email"`
	Name   string  `json:"name" validate:"required"`
	Image  string  `json:"image"`
	Price  float64 `json:"price" validate:"required"`
}

// ToDomain converts the request to a domain model.
func (r *ItemRequest) ToDomain() *domain.CartItem {
	return &domain.CartItem{
		MenuID: r.MenuID,
		Email:  r.Email,
		Name:   r.Name,
		Image:  r.Image,
		Price:  r.Price,
	}
}

// Create handles POST /cart. The entry's owner must be the authenticated
// caller.
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

	claims := httputil.GetClaims(r.Context())
	if claims == nil || claims.Email != req.Email {
		httputil.Message(w, http.StatusForbidden, "forbidden access")
		return
	}

	result, err := h.repo.Insert(r.Context(), req.ToDomain())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// List handles GET /cart?email=. Only the owner may read their cart.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httputil.Error(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	claims := httputil.GetClaims(r.Context())
	if claims == nil || claims.Email != email {
		httputil.Message(w, http.StatusForbidden, "forbidden access")
		return
	}

	items, err := h.repo.ListByEmail(r.Context(), email)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, items)
}

// Delete handles DELETE /cart/{id}. Deletion is by identifier only; a second
// delete of the same id reports a zero count.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid id")
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
	ctxlog.FromContext(r.Context()).Error("cart store operation failed", "error", err)
	httputil.Message(w, http.StatusInternalServerError, "internal error")
}
