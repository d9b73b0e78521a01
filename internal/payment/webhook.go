package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/m3rciful/eventbot/core/logger"
	"github.com/m3rciful/eventbot/internal/models"
	"log/slog"
)

const maxWebhookBody = 64 << 10

// Confirmer applies a verified payment to the ledger.
type Confirmer interface {
	ConfirmPayment(ctx context.Context, userID int64, gameType models.GameType, gameDate time.Time, restaurant string) error
}

// WebhookServer receives Stripe events on POST /webhook.
type WebhookServer struct {
	secret    string
	confirmer Confirmer
	srv       *http.Server
}

// NewWebhookServer builds the webhook listener. Start must be called to
// begin serving.
func NewWebhookServer(cfg Config, confirmer Confirmer) *WebhookServer {
	ws := &WebhookServer{
		secret:    cfg.WebhookSecret,
		confirmer: confirmer,
	}

	r := chi.NewRouter()
	r.Post("/webhook", ws.handleWebhook)

	ws.srv = &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return ws
}

// Start serves in a background goroutine until Shutdown.
func (ws *WebhookServer) Start() {
	go func() {
		logger.PAY.Info("webhook listener up",
			slog.String("event", "payment.listen"),
			slog.String("addr", ws.srv.Addr),
		)
		if err := ws.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.PAY.Error("webhook listener failed",
				slog.String("event", "payment.listen"),
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Shutdown drains the listener.
func (ws *WebhookServer) Shutdown(ctx context.Context) error {
	return ws.srv.Shutdown(ctx)
}

// handleWebhook verifies the Stripe signature and dispatches completed
// checkouts to the ledger. Signature failure is a 400 with no mutation;
// unrelated event types are acknowledged and ignored.
func (ws *WebhookServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "read failure", http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), ws.secret)
	if err != nil {
		logger.PAY.Warn("signature rejected",
			slog.String("event", "payment.webhook"),
			slog.String("err", err.Error()),
		)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		w.WriteHeader(http.StatusOK)
		return
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		http.Error(w, "bad event object", http.StatusBadRequest)
		return
	}

	md, err := ParseMetadata(cs.Metadata)
	if err != nil {
		logger.PAY.Warn("metadata rejected",
			slog.String("event", "payment.webhook"),
			slog.String("err", err.Error()),
		)
		http.Error(w, "bad metadata", http.StatusBadRequest)
		return
	}

	if err := ws.confirmer.ConfirmPayment(r.Context(), md.UserID, md.GameType, md.GameDate, md.Restaurant); err != nil {
		logger.PAY.Error("confirm failed",
			slog.String("event", "payment.webhook"),
			slog.Int64("user_id", md.UserID),
			slog.String("err", err.Error()),
		)
		// 5xx lets the sender retry the delivery.
		http.Error(w, "confirm failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
