package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/schedule"
)

func waitNotices(t *testing.T, notify *fakeNotifier, want int) []sentNotice {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if got := notify.notices(); len(got) >= want {
			return got
		}
		select {
		case <-notify.fired:
		case <-deadline:
			t.Fatalf("timed out waiting for %d notices, got %d", want, len(notify.notices()))
		}
	}
}

func TestSessionExpiryNotifiesParticipants(t *testing.T) {
	tasks := schedule.NewRegistry()
	defer tasks.Close()

	notify := newFakeNotifier()
	store := &fakeSessionStore{
		expireOK: true,
		expire: models.GameSession{
			GameID:       7,
			GameType:     models.GameMeetEat,
			Participants: pq.Int64Array{100, 200},
		},
	}
	svc := NewSessions(store, tasks, notify, 3*time.Hour)

	// Past-due end time fires the task immediately.
	svc.ScheduleExpiry(models.GameSession{GameID: 7, EndTime: time.Now().Add(-time.Minute)})

	got := waitNotices(t, notify, 2)
	require.Len(t, got, 2)
	assert.Equal(t, int64(100), got[0].userID)
	assert.Equal(t, int64(200), got[1].userID)
	assert.Contains(t, got[0].text, "session has ended")
}

func TestSessionExpireIsExactlyOnce(t *testing.T) {
	tasks := schedule.NewRegistry()
	defer tasks.Close()

	notify := newFakeNotifier()
	store := &fakeSessionStore{
		expireOK: true,
		expire: models.GameSession{
			GameID:       9,
			GameType:     models.GameBarLiar,
			Participants: pq.Int64Array{42},
		},
	}
	svc := NewSessions(store, tasks, notify, 3*time.Hour)

	svc.expire(context.Background(), 9)
	svc.expire(context.Background(), 9)

	store.mu.Lock()
	calls := store.expireCalls
	store.mu.Unlock()
	assert.Equal(t, 2, calls, "store decides idempotency, service always asks")
	assert.Len(t, notify.notices(), 1, "second expire saw expired=false and stayed quiet")
}

func TestRecoverActiveReschedulesEverySession(t *testing.T) {
	tasks := schedule.NewRegistry()
	defer tasks.Close()

	future := time.Now().Add(time.Hour)
	store := &fakeSessionStore{active: []models.GameSession{
		{GameID: 1, EndTime: future},
		{GameID: 2, EndTime: future},
		{GameID: 3, EndTime: future},
	}}
	svc := NewSessions(store, tasks, newFakeNotifier(), 3*time.Hour)

	require.NoError(t, svc.RecoverActive(context.Background()))
	assert.Equal(t, 3, tasks.Pending())
}

func TestDeleteCancelsPendingExpiry(t *testing.T) {
	tasks := schedule.NewRegistry()
	defer tasks.Close()

	store := &fakeSessionStore{}
	svc := NewSessions(store, tasks, newFakeNotifier(), 3*time.Hour)

	svc.ScheduleExpiry(models.GameSession{GameID: 5, EndTime: time.Now().Add(time.Hour)})
	require.Equal(t, 1, tasks.Pending())

	deleted, err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 0, tasks.Pending())
	assert.Equal(t, []int64{5}, store.deleted)
}

func TestRescheduleRearmsExpiry(t *testing.T) {
	tasks := schedule.NewRegistry()
	defer tasks.Close()

	store := &fakeSessionStore{}
	svc := NewSessions(store, tasks, newFakeNotifier(), 3*time.Hour)

	newDate := time.Now().Add(48 * time.Hour)
	sess, err := svc.Reschedule(context.Background(), 11, newDate)
	require.NoError(t, err)
	assert.Equal(t, int64(11), sess.GameID)
	assert.Equal(t, newDate.Add(3*time.Hour), sess.EndTime)
	assert.Equal(t, 1, tasks.Pending())
}
