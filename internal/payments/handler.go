// Package payments provides checkout recording and the payment gateway
// bridge.
package payments

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bistroboss/bistro-api/internal/domain"
	"github.com/bistroboss/bistro-api/internal/pkg/ctxlog"
	"github.com/bistroboss/bistro-api/internal/pkg/httputil"
	"github.com/bistroboss/bistro-api/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles HTTP requests for the payments module.
type Handler struct {
	repo      Repository
	carts     CartCleaner
	intents   IntentCreator
	validator *validator.Validate
}

// NewHandler creates a new payments handler.
func NewHandler(repo Repository, carts CartCleaner, intents IntentCreator) *Handler {
	return &Handler{
		repo:      repo,
		carts:     carts,
		intents:   intents,
		validator: validator.New(),
	}
}

// RegisterRoutes registers payment routes. Intent creation and payment
// recording are open (the client drives checkout); history reads require
// authentication.
func (h *Handler) RegisterRoutes(r chi.Router, requireAuth, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/create-payment-intent", h.CreateIntent)
	r.With(requireAuth).Get("/payments/{email}", h.ListByEmail)
	r.Post("/payments", h.Record)
}

// IntentRequest represents the request body for creating a payment intent.
type IntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// CreateIntent handles POST /create-payment-intent. Gateway failures are
// passed through with the upstream message.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	// Minor units. Fractional cents truncate: 10.99 becomes 1098.
	amount := int64(req.Price * 100)

	clientSecret, err := h.intents.CreateIntent(r.Context(), amount)
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.PaymentIntentsCreated.Inc()
	httputil.JSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// ListByEmail handles GET /payments/{email}. Only the owner may read their
// payment history.
func (h *Handler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	claims := httputil.GetClaims(r.Context())
	if claims == nil || claims.Email != email {
		httputil.Message(w, http.StatusForbidden, "forbidden access")
		return
	}

	history, err := h.repo.ListByEmail(r.Context(), email)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, history)
}

// RecordRequest represents the request body for recording a completed
// checkout.
type RecordRequest struct {
	Email         string    `json:"email" validate:"required,email"`
	Price         float64   `json:"price" validate:"required"`
	TransactionID string    `json:"transactionId"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	CartIDs       []string  `json:"cartIds" validate:"required"`
	MenuItemIDs   []string  `json:"menuItemIds" validate:"required"`
}

// Record handles POST /payments: persists the payment, then deletes the
// covered cart entries. The two writes are independent; there is no
// transaction spanning them and no compensation if the cleanup fails after
// the insert succeeded.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	menuItemIDs, err := parseObjectIDs(req.MenuItemIDs)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid menu item id")
		return
	}
	cartIDs, err := parseObjectIDs(req.CartIDs)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	payment := &domain.Payment{
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		Date:          req.Date,
		Status:        req.Status,
		CartIDs:       req.CartIDs,
		MenuItemIDs:   menuItemIDs,
	}

	paymentResult, err := h.repo.Insert(r.Context(), payment)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	deleteResult, err := h.carts.DeleteMany(r.Context(), cartIDs)
	if err != nil {
		// The payment is already recorded at this point; the cart entries
		// are left behind.
		ctxlog.FromContext(r.Context()).Error("cart cleanup failed after payment insert",
			"email", req.Email,
			"cart_ids", req.CartIDs,
			"error", err,
		)
		httputil.Message(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.PaymentsRecorded.Inc()
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"paymentResult": paymentResult,
		"deleteResult":  deleteResult,
	})
}

func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, raw := range hexIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *Handler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	ctxlog.FromContext(r.Context()).Error("payment store operation failed", "error", err)
	httputil.Message(w, http.StatusInternalServerError, "internal error")
}
