package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/eventbot/internal/models"
)

// Sessions manages game session rows and their expiry side effects.
type Sessions struct {
	db *sqlx.DB
}

// NewSessions returns a session store bound to db.
func NewSessions(db *sqlx.DB) *Sessions {
	return &Sessions{db: db}
}

const sessionColumns = `game_id, game_type, game_date, participants, active, end_time`

// Get loads one session by id.
func (s *Sessions) Get(ctx context.Context, gameID int64) (models.GameSession, error) {
	var sess models.GameSession
	err := s.db.GetContext(ctx, &sess,
		`SELECT `+sessionColumns+` FROM games WHERE game_id = $1`, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameSession{}, ErrNotFound
	}
	if err != nil {
		return models.GameSession{}, fmt.Errorf("sessions: get %d: %w", gameID, err)
	}
	return sess, nil
}

// ListActive returns sessions that have not expired yet, oldest end time first.
func (s *Sessions) ListActive(ctx context.Context) ([]models.GameSession, error) {
	var out []models.GameSession
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+sessionColumns+` FROM games WHERE active ORDER BY end_time`)
	if err != nil {
		return nil, fmt.Errorf("sessions: list active: %w", err)
	}
	return out, nil
}

// Expire deactivates a session and marks its visits attended, all in one
// transaction. The active guard makes the flip exactly-once: a second call
// returns expired=false and changes nothing.
func (s *Sessions) Expire(ctx context.Context, gameID int64) (sess models.GameSession, expired bool, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.GameSession{}, false, fmt.Errorf("sessions: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.GetContext(ctx, &sess, `
		UPDATE games SET active = FALSE
		WHERE game_id = $1 AND active
		RETURNING `+sessionColumns,
		gameID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.Rollback()
		return models.GameSession{}, false, err
	}
	if err != nil {
		return models.GameSession{}, false, fmt.Errorf("sessions: deactivate %d: %w", gameID, err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE visits SET attended = TRUE WHERE game_date = $1 AND NOT attended`,
		sess.GameDate,
	)
	if err != nil {
		return models.GameSession{}, false, fmt.Errorf("sessions: mark visits: %w", err)
	}
	marked, err := res.RowsAffected()
	if err != nil {
		return models.GameSession{}, false, fmt.Errorf("sessions: marked rows: %w", err)
	}
	if marked > 0 {
		if _, err = tx.ExecContext(ctx,
			`UPDATE stats SET total_visits = total_visits + $1 WHERE id = 0`, marked); err != nil {
			return models.GameSession{}, false, fmt.Errorf("sessions: count visits: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.GameSession{}, false, fmt.Errorf("sessions: commit: %w", err)
	}
	return sess, true, nil
}

// Delete removes a session row. Returns false when the id is unknown.
func (s *Sessions) Delete(ctx context.Context, gameID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
	if err != nil {
		return false, fmt.Errorf("sessions: delete %d: %w", gameID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sessions: delete %d: %w", gameID, err)
	}
	return n > 0, nil
}

// Reschedule moves a session to a new date, recomputing its end time.
func (s *Sessions) Reschedule(ctx context.Context, gameID int64, newDate time.Time, sessionTTL time.Duration) (models.GameSession, error) {
	var sess models.GameSession
	err := s.db.GetContext(ctx, &sess, `
		UPDATE games SET game_date = $2, end_time = $3
		WHERE game_id = $1
		RETURNING `+sessionColumns,
		gameID, newDate, newDate.Add(sessionTTL),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameSession{}, ErrNotFound
	}
	if err != nil {
		return models.GameSession{}, fmt.Errorf("sessions: reschedule %d: %w", gameID, err)
	}
	return sess, nil
}
