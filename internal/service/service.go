// Package service implements the application logic between the bot surface
// and the storage layer.
package service

import (
	"context"
	"time"

	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/storage"
)

// Notifier delivers out-of-band text notices to a user. Implemented by the
// bot layer; services never talk to the transport directly.
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) error
}

// ProfileStore is the persistence slice behind Profiles.
type ProfileStore interface {
	Get(ctx context.Context, userID int64) (models.Profile, error)
	Save(ctx context.Context, p models.Profile) (first bool, err error)
}

// LedgerStore is the persistence slice behind Ledger.
type LedgerStore interface {
	ConfirmPayment(ctx context.Context, userID int64, gameType models.GameType, gameDate time.Time, restaurant string, sessionTTL time.Duration) (models.GameSession, error)
	PastVisitDates(ctx context.Context, userID int64) ([]time.Time, error)
	FutureGameDates(ctx context.Context, userID int64) ([]time.Time, error)
	AttendedCount(ctx context.Context, userID int64) (int, error)
}

// SessionStore is the persistence slice behind Sessions.
type SessionStore interface {
	ListActive(ctx context.Context) ([]models.GameSession, error)
	Expire(ctx context.Context, gameID int64) (sess models.GameSession, expired bool, err error)
	Delete(ctx context.Context, gameID int64) (bool, error)
	Reschedule(ctx context.Context, gameID int64, newDate time.Time, sessionTTL time.Duration) (models.GameSession, error)
}

// QuestionStore is the persistence slice behind Questions.
type QuestionStore interface {
	Create(ctx context.Context, userID int64, text string) (int64, error)
	Answer(ctx context.Context, qID int64, answer string) (int64, error)
}

// StatsStore is the persistence slice behind Stats.
type StatsStore interface {
	Increment(ctx context.Context, counter storage.Counter) error
	Snapshot(ctx context.Context) (models.Stats, error)
}
