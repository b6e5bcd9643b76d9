package users

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

// Handler handles HTTP requests for the users module.
type Handler struct {
	service   *Service
	repo      Repository
	validator *validator.Validate
}

// NewHandler creates a new users handler.
func NewHandler(service *Service, repo Repository) *Handler {
	return &Handler{
		service:   service,
		repo:      repo,
		validator: validator.New(),
	}
}

// RegisterRoutes registers user routes. Creation is open (it happens on
// first sign-in); listing, deletion and promotion are admin-only; the admin
// check is self-only.
func (h *Handler) RegisterRoutes(r chi.Router, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/users", h.Create)
	r.With(requireAuth, requireAdmin).Get("/users", h.List)
	r.With(requireAuth).Get("/users/admin/{email}", h.CheckAdmin)
	r.With(requireAuth, requireAdmin).Delete("/users/{id}", h.Delete)
	r.With(requireAuth, requireAdmin).Patch("/users/admin/{id}", h.Promote)
}

// CreateRequest represents the request body for creating a user.
type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
}

// Create handles POST /users. Creating an already-known email succeeds with
// a null insertedId and writes nothing.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	result, err := h.service.Create(r.Context(), &domain.User{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	if result == nil {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"message":    "User already exists",
			"insertedId": nil,
		})
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// List handles GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, all)
}

// CheckAdmin handles GET /users/admin/{email}. Callers may only query their
// own email.
func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	claims := httputil.GetClaims(r.Context())
	if claims == nil || claims.Email != email {
		httputil.Message(w, http.StatusForbidden, "Unauthorized access")
		return
	}

	admin, err := h.service.IsAdmin(r.Context(), email)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]bool{"admin": admin})
}

// Delete handles DELETE /users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
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

// Promote handles PATCH /users/admin/{id}, escalating the user to admin.
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	result, err := h.repo.SetRole(r.Context(), id, domain.RoleAdmin)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	ctxlog.FromContext(r.Context()).Error("user store operation failed", "error", err)
	httputil.Message(w, http.StatusInternalServerError, "internal error")
}
