package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/eventbot/internal/models"
)

// Profiles persists user intake records.
type Profiles struct {
	db *sqlx.DB
}

// NewProfiles returns a profile store bound to db.
func NewProfiles(db *sqlx.DB) *Profiles {
	return &Profiles{db: db}
}

// Get loads one profile. Returns ErrNotFound when the user never started intake.
func (s *Profiles) Get(ctx context.Context, userID int64) (models.Profile, error) {
	var p models.Profile
	err := s.db.GetContext(ctx, &p,
		`SELECT user_id, name, age, answer, completed FROM users WHERE user_id = $1`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("profiles: get %d: %w", userID, err)
	}
	return p, nil
}

// Save upserts a completed profile. The first completion for a user also
// increments total_users; the prior completed flag is read under row lock in
// the same transaction so the counter moves exactly once per user.
func (s *Profiles) Save(ctx context.Context, p models.Profile) (first bool, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("profiles: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var wasCompleted bool
	err = tx.GetContext(ctx, &wasCompleted,
		`SELECT completed FROM users WHERE user_id = $1 FOR UPDATE`, p.UserID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("profiles: lock %d: %w", p.UserID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (user_id, name, age, answer, completed)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, age = EXCLUDED.age, answer = EXCLUDED.answer, completed = TRUE`,
		p.UserID, p.Name, p.Age, p.Answer,
	)
	if err != nil {
		return false, fmt.Errorf("profiles: save %d: %w", p.UserID, err)
	}

	first = !wasCompleted
	if first {
		if _, err = tx.ExecContext(ctx,
			`UPDATE stats SET total_users = total_users + 1 WHERE id = 0`); err != nil {
			return false, fmt.Errorf("profiles: count first completion: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("profiles: commit: %w", err)
	}
	return first, nil
}
