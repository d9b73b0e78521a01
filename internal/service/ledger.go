package service

import (
	"context"
	"fmt"
	"time"

	"github.com/m3rciful/eventbot/core/logger"
	"github.com/m3rciful/eventbot/internal/models"

	"log/slog"
)

// Ledger turns verified payments into registration, visit, and session rows.
type Ledger struct {
	store    LedgerStore
	sessions *Sessions
	notify   Notifier
	ttl      time.Duration
}

// NewLedger wires the ledger service. ttl is the session duration appended
// to the game date to produce the session end time.
func NewLedger(store LedgerStore, sessions *Sessions, notify Notifier, ttl time.Duration) *Ledger {
	return &Ledger{store: store, sessions: sessions, notify: notify, ttl: ttl}
}

// ConfirmPayment records a verified payment: one transaction for the ledger
// rows and counters, then the expiry task and the user's confirmation notice.
// Calling it twice for the same arguments books the user twice (rebooking)
// but never duplicates the visit row or the session.
func (s *Ledger) ConfirmPayment(ctx context.Context, userID int64, gameType models.GameType, gameDate time.Time, restaurant string) error {
	sess, err := s.store.ConfirmPayment(ctx, userID, gameType, gameDate, restaurant, s.ttl)
	if err != nil {
		return err
	}

	logger.SVCLedger.Info("payment confirmed",
		slog.String("event", "ledger.confirm"),
		slog.Int64("user_id", userID),
		slog.String("game_type", string(gameType)),
		slog.String("game_date", gameDate.Format("2006-01-02")),
		slog.String("restaurant", restaurant),
		slog.Int64("session_id", sess.GameID),
	)

	s.sessions.ScheduleExpiry(sess)

	text := fmt.Sprintf(
		"✅ You are booked for %s on %s! Seats are held for 3 hours. Cancellation within 48 hours of the date is non-refundable.",
		gameType.Title(), gameDate.Format("2006-01-02"),
	)
	if err := s.notify.Notify(ctx, userID, text); err != nil {
		logger.SVCLedger.Warn("confirmation notice failed",
			slog.String("event", "ledger.notify"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
	return nil
}

// VisitHistory returns past attended dates and future paid dates for the
// cabinet view.
func (s *Ledger) VisitHistory(ctx context.Context, userID int64) (past, future []time.Time, err error) {
	past, err = s.store.PastVisitDates(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	future, err = s.store.FutureGameDates(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return past, future, nil
}

// LoyaltyCount returns the number of attended visits for the loyalty card.
func (s *Ledger) LoyaltyCount(ctx context.Context, userID int64) (int, error) {
	return s.store.AttendedCount(ctx, userID)
}
