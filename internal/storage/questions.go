package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Questions stores help requests and their admin answers.
type Questions struct {
	db *sqlx.DB
}

// NewQuestions returns a question store bound to db.
func NewQuestions(db *sqlx.DB) *Questions {
	return &Questions{db: db}
}

// Create inserts a new unanswered question and returns its id.
func (s *Questions) Create(ctx context.Context, userID int64, text string) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		`INSERT INTO questions (user_id, question) VALUES ($1, $2) RETURNING q_id`,
		userID, text,
	)
	if err != nil {
		return 0, fmt.Errorf("questions: create: %w", err)
	}
	return id, nil
}

// Answer marks a question answered and returns the asker's user id.
// Returns ErrNotFound for an unknown id.
func (s *Questions) Answer(ctx context.Context, qID int64, answer string) (int64, error) {
	var userID int64
	err := s.db.GetContext(ctx, &userID, `
		UPDATE questions SET answered = TRUE, answer = $2
		WHERE q_id = $1
		RETURNING user_id`,
		qID, answer,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("questions: answer %d: %w", qID, err)
	}
	return userID, nil
}
