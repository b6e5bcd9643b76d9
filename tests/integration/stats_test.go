//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/bistroboss/bistro-api/internal/domain"
	"github.com/bistroboss/bistro-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedStatsFixtures(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	dropCollections(t, "menu", "payments")

	pizzaID := primitive.NewObjectID()
	saladID := primitive.NewObjectID()

	_, err := testDB.Collection("menu").InsertMany(ctx, []interface{}{
		&domain.MenuItem{ID: pizzaID, Name: "Margherita", Category: "pizza", Price: 10},
		&domain.MenuItem{ID: saladID, Name: "Caesar", Category: "salad", Price: 7.5},
	})
	require.NoError(t, err)

	_, err = testDB.Collection("payments").InsertMany(ctx, []interface{}{
		&domain.Payment{Email: "a@example.com", Price: 10, MenuItemIDs: []primitive.ObjectID{pizzaID}},
		&domain.Payment{Email: "b@example.com", Price: 20, MenuItemIDs: []primitive.ObjectID{pizzaID, saladID}},
		&domain.Payment{Email: "c@example.com", Price: 30, MenuItemIDs: []primitive.ObjectID{}},
	})
	require.NoError(t, err)
}

func TestStats_RequireAdmin(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, testutil.RandomEmail())

	resp, err := client.GET("/admin-stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = client.GET("/order-stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminStats(t *testing.T) {
	seedStatsFixtures(t)
	admin := seedAdmin(t)

	resp, err := admin.GET("/admin-stats")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary struct {
		Users    int64   `json:"users"`
		MenuItem int64   `json:"menuItem"`
		Orders   int64   `json:"orders"`
		Revenue  float64 `json:"revenue"`
	}
	testutil.DecodeJSON(t, resp, &summary)

	assert.Positive(t, summary.Users)
	assert.Equal(t, int64(2), summary.MenuItem)
	assert.Equal(t, int64(3), summary.Orders)
	assert.Equal(t, 60.0, summary.Revenue)
}

func TestOrderStats(t *testing.T) {
	seedStatsFixtures(t)
	admin := seedAdmin(t)

	resp, err := admin.GET("/order-stats")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []struct {
		Category string  `json:"category"`
		Quantity int64   `json:"quantity"`
		Revenue  float64 `json:"revenue"`
	}
	testutil.DecodeJSON(t, resp, &rows)
	require.Len(t, rows, 2)

	byCategory := make(map[string]struct {
		Quantity int64
		Revenue  float64
	})
	for _, row := range rows {
		byCategory[row.Category] = struct {
			Quantity int64
			Revenue  float64
		}{row.Quantity, row.Revenue}
	}

	// The pizza was ordered in two separate payments; revenue uses the
	// current menu price per ordered item.
	assert.Equal(t, int64(2), byCategory["pizza"].Quantity)
	assert.Equal(t, 20.0, byCategory["pizza"].Revenue)
	assert.Equal(t, int64(1), byCategory["salad"].Quantity)
	assert.Equal(t, 7.5, byCategory["salad"].Revenue)
}
