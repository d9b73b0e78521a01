package service

import (
	"context"
	"strconv"
	"time"

	"github.com/m3rciful/eventbot/core/logger"
	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/schedule"

	"log/slog"
)

const sessionEndedText = "The game session has ended. Your visit is counted, see you at the next one!"

// Sessions owns the game session lifecycle: expiry scheduling, the
// exactly-once deactivation, participant notices, and admin management.
type Sessions struct {
	store  SessionStore
	tasks  *schedule.Registry
	notify Notifier
	ttl    time.Duration
}

// NewSessions wires the session service. ttl is the session duration used
// when an admin reschedules a date.
func NewSessions(store SessionStore, tasks *schedule.Registry, notify Notifier, ttl time.Duration) *Sessions {
	return &Sessions{store: store, tasks: tasks, notify: notify, ttl: ttl}
}

func expiryKey(gameID int64) string {
	return "session:" + strconv.FormatInt(gameID, 10)
}

// ScheduleExpiry arms the one-shot expiry task for a session. The fire time
// is the stored end time; a past-due session fires immediately.
func (s *Sessions) ScheduleExpiry(sess models.GameSession) {
	id := sess.GameID
	s.tasks.Schedule(expiryKey(id), sess.EndTime, func(ctx context.Context) {
		s.expire(ctx, id)
	})
	logger.SVCSessions.Info("expiry scheduled",
		slog.String("event", "session.expiry_scheduled"),
		slog.Int64("session_id", id),
		slog.Time("end_time", sess.EndTime),
	)
}

func (s *Sessions) expire(ctx context.Context, gameID int64) {
	sess, expired, err := s.store.Expire(ctx, gameID)
	if err != nil {
		logger.SVCSessions.Error("expiry failed",
			slog.String("event", "session.expire"),
			slog.Int64("session_id", gameID),
			slog.String("err", err.Error()),
		)
		return
	}
	if !expired {
		// Already deactivated elsewhere, nothing to announce.
		return
	}

	logger.SVCSessions.Info("session expired",
		slog.String("event", "session.expire"),
		slog.Int64("session_id", gameID),
		slog.String("game_type", string(sess.GameType)),
		slog.Int("participants", len(sess.Participants)),
	)

	// Delivery failures are logged only; the state flip already committed.
	for _, userID := range sess.Participants {
		if err := s.notify.Notify(ctx, userID, sessionEndedText); err != nil {
			logger.SVCSessions.Warn("participant notice failed",
				slog.String("event", "session.notify"),
				slog.Int64("session_id", gameID),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
	}
}

// RecoverActive reschedules expiry for every session that was still active
// when the process last stopped. Past-due sessions fire right away.
func (s *Sessions) RecoverActive(ctx context.Context) error {
	active, err := s.store.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, sess := range active {
		s.ScheduleExpiry(sess)
	}
	if len(active) > 0 {
		logger.SVCSessions.Info("active sessions recovered",
			slog.String("event", "session.recover"),
			slog.Int("count", len(active)),
		)
	}
	return nil
}

// ListActive returns the admin management view.
func (s *Sessions) ListActive(ctx context.Context) ([]models.GameSession, error) {
	return s.store.ListActive(ctx)
}

// Delete removes a session and cancels its pending expiry task.
func (s *Sessions) Delete(ctx context.Context, gameID int64) (bool, error) {
	deleted, err := s.store.Delete(ctx, gameID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.tasks.Cancel(expiryKey(gameID))
		logger.SVCSessions.Info("session deleted",
			slog.String("event", "session.delete"),
			slog.Int64("session_id", gameID),
		)
	}
	return deleted, nil
}

// Reschedule moves a session to a new date and re-arms its expiry task.
func (s *Sessions) Reschedule(ctx context.Context, gameID int64, newDate time.Time) (models.GameSession, error) {
	sess, err := s.store.Reschedule(ctx, gameID, newDate, s.ttl)
	if err != nil {
		return models.GameSession{}, err
	}
	s.ScheduleExpiry(sess)
	return sess, nil
}
