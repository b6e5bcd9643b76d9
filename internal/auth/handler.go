package auth

import (
	"encoding/json"
	"net/http"

	"github.com/bistroboss/bistro-api/internal/pkg/ctxlog"
	"github.com/bistroboss/bistro-api/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for token issuance.
type Handler struct {
	auth      *Authenticator
	validator *validator.Validate
}

// NewHandler creates a new auth handler.
func NewHandler(auth *Authenticator) *Handler {
	return &Handler{
		auth:      auth,
		validator: validator.New(),
	}
}

// RegisterRoutes registers auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/jwt", h.IssueToken)
}

// IssueToken handles POST /jwt. The body is an arbitrary identity claim;
// only the email field is required, everything else is signed through.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var claim map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&claim); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	email, _ := claim["email"].(string)
	if err := h.validator.Var(email, "required,email"); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	token, err := h.auth.IssueToken(claim)
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("failed to issue token", "error", err)
		httputil.Message(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"token": token})
}
