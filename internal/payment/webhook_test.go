package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/eventbot/core/logger"
	"github.com/m3rciful/eventbot/internal/models"
)

const testWebhookSecret = "whsec_test_secret"

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

type confirmedBooking struct {
	userID     int64
	gameType   models.GameType
	gameDate   time.Time
	restaurant string
}

type fakeConfirmer struct {
	calls []confirmedBooking
	err   error
}

func (f *fakeConfirmer) ConfirmPayment(_ context.Context, userID int64, gameType models.GameType, gameDate time.Time, restaurant string) error {
	f.calls = append(f.calls, confirmedBooking{userID, gameType, gameDate, restaurant})
	return f.err
}

func signPayload(t *testing.T, payload []byte) string {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func checkoutEvent(t *testing.T, eventType string, metadata map[string]string) []byte {
	t.Helper()
	session := map[string]any{"id": "cs_test_1", "metadata": metadata}
	object, err := json.Marshal(session)
	require.NoError(t, err)
	payload, err := json.Marshal(map[string]any{
		"id":          "evt_test_1",
		"api_version": stripe.APIVersion,
		"type":        eventType,
		"data":        map[string]any{"object": json.RawMessage(object)},
	})
	require.NoError(t, err)
	return payload
}

func postWebhook(ws *WebhookServer, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signature)
	rec := httptest.NewRecorder()
	ws.handleWebhook(rec, req)
	return rec
}

func TestWebhookConfirmsCompletedCheckout(t *testing.T) {
	confirmer := &fakeConfirmer{}
	ws := NewWebhookServer(Config{WebhookSecret: testWebhookSecret, Listen: ":0"}, confirmer)

	payload := checkoutEvent(t, string(stripe.EventTypeCheckoutSessionCompleted), map[string]string{
		"user_id":    "100",
		"game_type":  "meet_eat",
		"game_date":  "2026-09-04",
		"restaurant": "Italian",
	})
	rec := postWebhook(ws, payload, signPayload(t, payload))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, confirmer.calls, 1)
	call := confirmer.calls[0]
	assert.Equal(t, int64(100), call.userID)
	assert.Equal(t, models.GameMeetEat, call.gameType)
	assert.Equal(t, "2026-09-04", call.gameDate.Format("2006-01-02"))
	assert.Equal(t, "Italian", call.restaurant)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	confirmer := &fakeConfirmer{}
	ws := NewWebhookServer(Config{WebhookSecret: testWebhookSecret, Listen: ":0"}, confirmer)

	payload := checkoutEvent(t, string(stripe.EventTypeCheckoutSessionCompleted), map[string]string{
		"user_id":   "100",
		"game_type": "meet_eat",
		"game_date": "2026-09-04",
	})
	rec := postWebhook(ws, payload, "t=1,v1=deadbeef")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, confirmer.calls)
}

func TestWebhookIgnoresUnrelatedEvents(t *testing.T) {
	confirmer := &fakeConfirmer{}
	ws := NewWebhookServer(Config{WebhookSecret: testWebhookSecret, Listen: ":0"}, confirmer)

	payload := checkoutEvent(t, "payment_intent.created", nil)
	rec := postWebhook(ws, payload, signPayload(t, payload))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, confirmer.calls)
}

func TestWebhookRejectsBadMetadata(t *testing.T) {
	confirmer := &fakeConfirmer{}
	ws := NewWebhookServer(Config{WebhookSecret: testWebhookSecret, Listen: ":0"}, confirmer)

	payload := checkoutEvent(t, string(stripe.EventTypeCheckoutSessionCompleted), map[string]string{
		"user_id":   "100",
		"game_type": "poker",
		"game_date": "2026-09-04",
	})
	rec := postWebhook(ws, payload, signPayload(t, payload))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, confirmer.calls)
}

func TestWebhookConfirmFailureAsksForRetry(t *testing.T) {
	confirmer := &fakeConfirmer{err: errors.New("db down")}
	ws := NewWebhookServer(Config{WebhookSecret: testWebhookSecret, Listen: ":0"}, confirmer)

	payload := checkoutEvent(t, string(stripe.EventTypeCheckoutSessionCompleted), map[string]string{
		"user_id":   "100",
		"game_type": "bar_liar",
		"game_date": "2026-09-04",
	})
	rec := postWebhook(ws, payload, signPayload(t, payload))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, confirmer.calls, 1)
}
