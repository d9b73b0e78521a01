package service

import (
	"context"
	"fmt"

	"github.com/m3rciful/eventbot/core/logger"
	"log/slog"
)

// Questions runs the help mailbox: user questions in, admin answers out.
type Questions struct {
	store   QuestionStore
	notify  Notifier
	adminID int64
}

// NewQuestions wires the question service.
func NewQuestions(store QuestionStore, notify Notifier, adminID int64) *Questions {
	return &Questions{store: store, notify: notify, adminID: adminID}
}

// Submit stores a question and forwards it to the admin with its id, which
// the admin quotes back in /answer.
func (s *Questions) Submit(ctx context.Context, userID int64, text string) (int64, error) {
	id, err := s.store.Create(ctx, userID, text)
	if err != nil {
		return 0, err
	}
	logger.SVCQuestions.Info("question submitted",
		slog.String("event", "question.submit"),
		slog.Int64("question_id", id),
		slog.Int64("user_id", userID),
	)
	forward := fmt.Sprintf("New question #%d from %d:\n%s", id, userID, text)
	if err := s.notify.Notify(ctx, s.adminID, forward); err != nil {
		logger.SVCQuestions.Warn("admin forward failed",
			slog.String("event", "question.forward"),
			slog.Int64("question_id", id),
			slog.String("err", err.Error()),
		)
	}
	return id, nil
}

// Answer records the admin's reply and returns the asker's user id so the
// caller can deliver it. storage.ErrNotFound passes through for unknown ids.
func (s *Questions) Answer(ctx context.Context, qID int64, text string) (int64, error) {
	userID, err := s.store.Answer(ctx, qID, text)
	if err != nil {
		return 0, err
	}
	logger.SVCQuestions.Info("question answered",
		slog.String("event", "question.answer"),
		slog.Int64("question_id", qID),
		slog.Int64("user_id", userID),
	)
	return userID, nil
}
