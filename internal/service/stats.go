package service

import (
	"context"

	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/storage"
)

// Stats exposes the aggregate counters for the admin dashboard.
type Stats struct {
	store StatsStore
}

// NewStats wires the stats service.
func NewStats(store StatsStore) *Stats {
	return &Stats{store: store}
}

// Increment bumps one counter. Each increment is its own atomic step; no
// cross-counter consistency is promised.
func (s *Stats) Increment(ctx context.Context, counter storage.Counter) error {
	return s.store.Increment(ctx, counter)
}

// Snapshot returns all four counters for display.
func (s *Stats) Snapshot(ctx context.Context) (models.Stats, error) {
	return s.store.Snapshot(ctx)
}
