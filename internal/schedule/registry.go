// Package schedule runs cancellable one-shot tasks keyed by owner.
//
// Watchdog nudges are keyed by (user, flow) and expiry tasks by session id.
// Scheduling under an occupied key supersedes the previous task, so a flow
// that restarts gets a fresh timer and the stale one never fires.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/m3rciful/eventbot/core/logger"
	"log/slog"
)

// Task is the work executed when a scheduled entry fires.
type Task func(ctx context.Context)

type entry struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

// Registry owns all pending one-shot tasks of the process.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	wg      sync.WaitGroup
	closed  bool
}

// NewRegistry returns an empty task registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Schedule registers fn to run once when at is reached. A past time fires
// immediately. A pending task under the same key is cancelled first.
func (r *Registry) Schedule(key string, at time.Time, fn Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	if prev, ok := r.entries[key]; ok {
		prev.timer.Stop()
		prev.cancel()
		logger.SCHED.Debug("task superseded",
			slog.String("event", "schedule.supersede"),
			slog.String("key", key),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	timer := time.NewTimer(delay)
	e := &entry{timer: timer, cancel: cancel}
	r.entries[key] = e

	logger.SCHED.Debug("task scheduled",
		slog.String("event", "schedule.add"),
		slog.String("key", key),
		slog.Time("at", at),
	)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}
		r.mu.Lock()
		if r.entries[key] == e {
			delete(r.entries, key)
		}
		r.mu.Unlock()
		fn(ctx)
	}()
}

// Cancel stops a pending task. Returns false when no task is registered
// under the key (it may already have fired).
func (r *Registry) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return false
	}
	delete(r.entries, key)
	e.timer.Stop()
	e.cancel()
	logger.SCHED.Debug("task cancelled",
		slog.String("event", "schedule.cancel"),
		slog.String("key", key),
	)
	return true
}

// Pending reports how many tasks are waiting to fire.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close cancels every pending task and waits for in-flight ones to return.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for key, e := range r.entries {
		e.timer.Stop()
		e.cancel()
		delete(r.entries, key)
	}
	r.mu.Unlock()
	r.wg.Wait()
}
