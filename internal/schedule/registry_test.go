package schedule

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/eventbot/core/logger"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

func TestScheduleFires(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	fired := make(chan struct{})
	r.Schedule("k", time.Now().Add(10*time.Millisecond), func(ctx context.Context) {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("task did not fire")
	}
	assert.Eventually(t, func() bool { return r.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestSchedulePastDueFiresImmediately(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	fired := make(chan struct{})
	r.Schedule("k", time.Now().Add(-time.Hour), func(ctx context.Context) {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("past-due task did not fire")
	}
}

func TestCancelStopsTask(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var fired atomic.Bool
	r.Schedule("k", time.Now().Add(50*time.Millisecond), func(ctx context.Context) {
		fired.Store(true)
	})

	require.True(t, r.Cancel("k"))
	assert.False(t, r.Cancel("k"), "second cancel finds nothing")

	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired.Load())
	assert.Equal(t, 0, r.Pending())
}

func TestScheduleSupersedes(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var firstFired atomic.Bool
	second := make(chan struct{})

	r.Schedule("k", time.Now().Add(30*time.Millisecond), func(ctx context.Context) {
		firstFired.Store(true)
	})
	r.Schedule("k", time.Now().Add(60*time.Millisecond), func(ctx context.Context) {
		close(second)
	})
	assert.Equal(t, 1, r.Pending())

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("superseding task did not fire")
	}
	assert.False(t, firstFired.Load(), "superseded task must not fire")
}

func TestCloseCancelsEverything(t *testing.T) {
	r := NewRegistry()

	var fired atomic.Bool
	r.Schedule("a", time.Now().Add(time.Hour), func(ctx context.Context) { fired.Store(true) })
	r.Schedule("b", time.Now().Add(time.Hour), func(ctx context.Context) { fired.Store(true) })

	r.Close()
	assert.Equal(t, 0, r.Pending())
	assert.False(t, fired.Load())

	// Scheduling after Close is a no-op.
	r.Schedule("c", time.Now(), func(ctx context.Context) { fired.Store(true) })
	time.Sleep(20 * time.Millisecond)
	assert.False(t, fired.Load())
}
