// Package stripe implements the payment gateway bridge.
package stripe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Client creates payment intents through the Stripe API.
type Client struct {
	api *client.API
}

// NewClient creates a gateway client authenticated with secretKey.
func NewClient(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}
}

// CreateIntent creates a card-only payment intent for amount in minor units
// and returns the client secret. Gateway errors surface with the upstream
// message so callers can pass it through unmodified.
func (c *Client) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripego.PaymentIntentParams{
		Amount:             stripego.Int64(amount),
		Currency:           stripego.String(string(stripego.CurrencyUSD)),
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return "", errors.New(stripeErr.Msg)
		}
		return "", err
	}
	return intent.ClientSecret, nil
}
