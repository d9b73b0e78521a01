package service

import (
	"context"

	"github.com/m3rciful/eventbot/core/logger"
	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/storage"

	"log/slog"
)

// Profiles exposes the intake record operations.
type Profiles struct {
	store ProfileStore
}

// NewProfiles wires the profile service.
func NewProfiles(store ProfileStore) *Profiles {
	return &Profiles{store: store}
}

// Get loads a user's profile; storage.ErrNotFound when intake never finished.
func (s *Profiles) Get(ctx context.Context, userID int64) (models.Profile, error) {
	return s.store.Get(ctx, userID)
}

// Completed reports whether the user has a finished profile.
func (s *Profiles) Completed(ctx context.Context, userID int64) (bool, error) {
	p, err := s.store.Get(ctx, userID)
	if err == storage.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Completed, nil
}

// Complete persists a finished intake. The first completion per user also
// moves the total_users counter, inside the store's transaction.
func (s *Profiles) Complete(ctx context.Context, p models.Profile) (bool, error) {
	first, err := s.store.Save(ctx, p)
	if err != nil {
		return false, err
	}
	logger.SVCProfiles.Info("profile completed",
		slog.String("event", "profile.completed"),
		slog.Int64("user_id", p.UserID),
		slog.Bool("first", first),
	)
	return first, nil
}
