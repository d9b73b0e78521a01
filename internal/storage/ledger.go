package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/eventbot/internal/models"
)

// Ledger records paid registrations, visit eligibility, and game sessions.
type Ledger struct {
	db *sqlx.DB
}

// NewLedger returns a ledger store bound to db.
func NewLedger(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

// ConfirmPayment applies a verified payment in one transaction: a new
// registration row (rebooking duplicates on purpose), an idempotent visit row,
// the session upsert for (gameType, gameDate) with the user appended to
// participants if absent, and the registration/payment counters.
// end_time is fixed at write time and never re-evaluated.
func (s *Ledger) ConfirmPayment(ctx context.Context, userID int64, gameType models.GameType, gameDate time.Time, restaurant string, sessionTTL time.Duration) (sess models.GameSession, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.GameSession{}, fmt.Errorf("ledger: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO registrations (user_id, game_type, game_date, restaurant, paid)
		VALUES ($1, $2, $3, $4, TRUE)`,
		userID, gameType, gameDate, restaurant,
	)
	if err != nil {
		return models.GameSession{}, fmt.Errorf("ledger: insert registration: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO visits (user_id, game_date) VALUES ($1, $2)
		ON CONFLICT (user_id, game_date) DO NOTHING`,
		userID, gameDate,
	)
	if err != nil {
		return models.GameSession{}, fmt.Errorf("ledger: insert visit: %w", err)
	}

	err = tx.GetContext(ctx, &sess, `
		INSERT INTO games (game_type, game_date, participants, active, end_time)
		VALUES ($1, $2, ARRAY[$3]::BIGINT[], TRUE, $4)
		ON CONFLICT (game_type, game_date) DO UPDATE
		SET participants = CASE
			WHEN $3 = ANY (games.participants) THEN games.participants
			ELSE array_append(games.participants, $3)
		END
		RETURNING game_id, game_type, game_date, participants, active, end_time`,
		gameType, gameDate, userID, gameDate.Add(sessionTTL),
	)
	if err != nil {
		return models.GameSession{}, fmt.Errorf("ledger: upsert session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE stats
		SET total_registrations = total_registrations + 1,
		    total_payments = total_payments + 1
		WHERE id = 0`)
	if err != nil {
		return models.GameSession{}, fmt.Errorf("ledger: count payment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.GameSession{}, fmt.Errorf("ledger: commit: %w", err)
	}
	return sess, nil
}

// PastVisitDates lists attended visit dates for the cabinet view.
func (s *Ledger) PastVisitDates(ctx context.Context, userID int64) ([]time.Time, error) {
	var dates []time.Time
	err := s.db.SelectContext(ctx, &dates, `
		SELECT game_date FROM visits
		WHERE user_id = $1 AND attended
		ORDER BY game_date`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: past visits for %d: %w", userID, err)
	}
	return dates, nil
}

// FutureGameDates lists paid upcoming registrations for the cabinet view.
func (s *Ledger) FutureGameDates(ctx context.Context, userID int64) ([]time.Time, error) {
	var dates []time.Time
	err := s.db.SelectContext(ctx, &dates, `
		SELECT game_date FROM registrations
		WHERE user_id = $1 AND paid AND game_date > CURRENT_DATE
		ORDER BY game_date`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: future games for %d: %w", userID, err)
	}
	return dates, nil
}

// AttendedCount returns the loyalty card counter.
func (s *Ledger) AttendedCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM visits WHERE user_id = $1 AND attended`, userID)
	if err != nil {
		return 0, fmt.Errorf("ledger: attended count for %d: %w", userID, err)
	}
	return count, nil
}
