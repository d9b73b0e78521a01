package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/eventbot/internal/models"
)

// column names keyed by counter, so user input can never reach the SQL text
var counterColumns = map[Counter]string{
	CounterUsers:         "total_users",
	CounterRegistrations: "total_registrations",
	CounterPayments:      "total_payments",
	CounterVisits:        "total_visits",
}

// Stats maintains the singleton counters row.
type Stats struct {
	db *sqlx.DB
}

// NewStats returns a stats store bound to db.
func NewStats(db *sqlx.DB) *Stats {
	return &Stats{db: db}
}

// Increment bumps one counter by 1 in a single atomic UPDATE.
func (s *Stats) Increment(ctx context.Context, counter Counter) error {
	col, ok := counterColumns[counter]
	if !ok {
		return fmt.Errorf("stats: unknown counter %q", counter)
	}
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE stats SET %s = %s + 1 WHERE id = 0`, col, col))
	if err != nil {
		return fmt.Errorf("stats: increment %s: %w", counter, err)
	}
	return nil
}

// Snapshot reads all four counters as of the moment of the call.
func (s *Stats) Snapshot(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	err := s.db.GetContext(ctx, &st, `
		SELECT id, total_users, total_registrations, total_payments, total_visits
		FROM stats WHERE id = 0`)
	if err != nil {
		return models.Stats{}, fmt.Errorf("stats: snapshot: %w", err)
	}
	return st, nil
}
