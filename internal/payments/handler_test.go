package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bistroboss/bistro-api/internal/domain"
	"github.com/bistroboss/bistro-api/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	recorded []*domain.Payment
}

func (m *mockRepository) Insert(_ context.Context, payment *domain.Payment) (*domain.InsertResult, error) {
	m.recorded = append(m.recorded, payment)
	return &domain.InsertResult{Acknowledged: true, InsertedID: primitive.NewObjectID()}, nil
}

func (m *mockRepository) ListByEmail(_ context.Context, email string) ([]domain.Payment, error) {
	history := make([]domain.Payment, 0)
	for _, p := range m.recorded {
		if p.Email == email {
			history = append(history, *p)
		}
	}
	return history, nil
}

// mockCartCleaner implements CartCleaner for testing.
type mockCartCleaner struct {
	deletedIDs []primitive.ObjectID
}

func (m *mockCartCleaner) DeleteMany(_ context.Context, ids []primitive.ObjectID) (*domain.DeleteResult, error) {
	m.deletedIDs = append(m.deletedIDs, ids...)
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: int64(len(ids))}, nil
}

// mockIntentCreator implements IntentCreator for testing.
type mockIntentCreator struct {
	gotAmount int64
	secret    string
	err       error
}

func (m *mockIntentCreator) CreateIntent(_ context.Context, amount int64) (string, error) {
	m.gotAmount = amount
	if m.err != nil {
		return "", m.err
	}
	return m.secret, nil
}

// authAs injects verified claims, standing in for the auth middleware.
func authAs(email string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), httputil.ClaimsKey, &domain.TokenClaims{Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(repo Repository, carts CartCleaner, intents IntentCreator, callerEmail string) http.Handler {
	handler := NewHandler(repo, carts, intents)
	r := chi.NewRouter()
	handler.RegisterRoutes(r, authAs(callerEmail), passthrough)
	return r
}

func TestCreateIntent_TruncatesFractionalCents(t *testing.T) {
	intents := &mockIntentCreator{secret: "pi_secret"}
	r := newTestRouter(&mockRepository{}, &mockCartCleaner{}, intents, "me@example.com")

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"price":10.99}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// int64(10.99 * 100) is 1098: the float product sits just under 1099.
	assert.Equal(t, int64(1098), intents.gotAmount)
	assert.JSONEq(t, `{"clientSecret":"pi_secret"}`, rec.Body.String())
}

func TestCreateIntent_GatewayErrorPassedThrough(t *testing.T) {
	intents := &mockIntentCreator{err: errors.New("Amount must be at least $0.50 usd")}
	r := newTestRouter(&mockRepository{}, &mockCartCleaner{}, intents, "me@example.com")

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"price":0.01}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Amount must be at least $0.50 usd"}`, rec.Body.String())
}

func TestCreateIntent_MissingPrice(t *testing.T) {
	r := newTestRouter(&mockRepository{}, &mockCartCleaner{}, &mockIntentCreator{}, "me@example.com")

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecord_InsertsPaymentAndClearsCart(t *testing.T) {
	repo := &mockRepository{}
	carts := &mockCartCleaner{}
	r := newTestRouter(repo, carts, &mockIntentCreator{}, "me@example.com")

	cartID := primitive.NewObjectID()
	menuID := primitive.NewObjectID()
	body := fmt.Sprintf(`{
		"email": "me@example.com",
		"price": 15.5,
		"transactionId": "pi_123",
		"date": "2024-05-01T10:00:00Z",
		"status": "pending",
		"cartIds": [%q],
		"menuItemIds": [%q]
	}`, cartID.Hex(), menuID.Hex())

	req := httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		PaymentResult domain.InsertResult `json:"paymentResult"`
		DeleteResult  domain.DeleteResult `json:"deleteResult"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.PaymentResult.Acknowledged)
	assert.Equal(t, int64(1), resp.DeleteResult.DeletedCount)

	require.Len(t, repo.recorded, 1)
	assert.Equal(t, "pi_123", repo.recorded[0].TransactionID)
	assert.Equal(t, []primitive.ObjectID{menuID}, repo.recorded[0].MenuItemIDs)
	assert.Equal(t, []primitive.ObjectID{cartID}, carts.deletedIDs)
}

func TestRecord_InvalidCartID(t *testing.T) {
	r := newTestRouter(&mockRepository{}, &mockCartCleaner{}, &mockIntentCreator{}, "me@example.com")

	body := fmt.Sprintf(`{
		"email": "me@example.com",
		"price": 15.5,
		"cartIds": ["not-hex"],
		"menuItemIds": [%q]
	}`, primitive.NewObjectID().Hex())

	req := httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListByEmail_OwnerMismatch(t *testing.T) {
	r := newTestRouter(&mockRepository{}, &mockCartCleaner{}, &mockIntentCreator{}, "me@example.com")

	req := httptest.NewRequest("GET", "/payments/other@example.com", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"forbidden access"}`, rec.Body.String())
}

func TestListByEmail_Owner(t *testing.T) {
	repo := &mockRepository{recorded: []*domain.Payment{
		{Email: "me@example.com", TransactionID: "pi_1"},
		{Email: "other@example.com", TransactionID: "pi_2"},
	}}
	r := newTestRouter(repo, &mockCartCleaner{}, &mockIntentCreator{}, "me@example.com")

	req := httptest.NewRequest("GET", "/payments/me@example.com", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pi_1")
	assert.NotContains(t, rec.Body.String(), "pi_2")
}
