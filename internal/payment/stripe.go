// Package payment binds the bot to Stripe: checkout creation on the way out,
// verified webhook events on the way back.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/m3rciful/eventbot/core/logger"
	"log/slog"
)

// Config holds payment settings.
type Config struct {
	StripeSecretKey string `yaml:"stripe_secret_key" envconfig:"STRIPE_SECRET_KEY"`
	WebhookSecret   string `yaml:"webhook_secret" envconfig:"STRIPE_WEBHOOK_SECRET"`
	// PublicURL is the externally reachable base for success/cancel redirects.
	PublicURL string `yaml:"public_url" envconfig:"PAYMENT_PUBLIC_URL"`
	// Listen is the webhook listener address, e.g. ":4242".
	Listen string `yaml:"listen" envconfig:"PAYMENT_LISTEN"`
	// Amount is the ticket price in major currency units.
	Amount   int64  `yaml:"amount" envconfig:"PAYMENT_AMOUNT"`
	Currency string `yaml:"currency" envconfig:"PAYMENT_CURRENCY"`
}

// Client creates Stripe checkout sessions for game bookings.
type Client struct {
	api *client.API
	cfg Config
}

// NewClient builds a checkout client from config.
func NewClient(cfg Config) *Client {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)
	return &Client{api: api, cfg: cfg}
}

// CreateCheckout opens a hosted checkout session carrying the booking
// metadata and returns its payment URL.
func (c *Client) CreateCheckout(ctx context.Context, md Metadata) (string, error) {
	ref := uuid.NewString()
	name := fmt.Sprintf("%s %s", md.GameType.Title(), md.GameDate.Format(dateLayout))

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card", "blik", "p24",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(c.cfg.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
				UnitAmount: stripe.Int64(c.cfg.Amount * 100),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(c.cfg.PublicURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(c.cfg.PublicURL + "/cancel"),
		ClientReferenceID: stripe.String(ref),
	}
	params.IdempotencyKey = stripe.String(ref)
	for k, v := range md.Encode() {
		params.AddMetadata(k, v)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("payment: create checkout: %w", err)
	}

	logger.PAY.Info("checkout created",
		slog.String("event", "payment.checkout"),
		slog.Int64("user_id", md.UserID),
		slog.String("game_type", string(md.GameType)),
		slog.String("game_date", md.GameDate.Format(dateLayout)),
		slog.String("checkout_id", sess.ID),
	)
	return sess.URL, nil
}
