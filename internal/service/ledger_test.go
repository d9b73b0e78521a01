package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/schedule"
	"github.com/m3rciful/eventbot/internal/storage"
)

func TestConfirmPaymentBooksAndNotifies(t *testing.T) {
	tasks := schedule.NewRegistry()
	defer tasks.Close()

	gameDate := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	notify := newFakeNotifier()
	store := &fakeLedgerStore{session: models.GameSession{
		GameID:   3,
		GameType: models.GameMeetEat,
		GameDate: gameDate,
		EndTime:  time.Now().Add(time.Hour),
	}}
	sessions := NewSessions(&fakeSessionStore{}, tasks, notify, 3*time.Hour)
	svc := NewLedger(store, sessions, notify, 3*time.Hour)

	err := svc.ConfirmPayment(context.Background(), 100, models.GameMeetEat, gameDate, "Italian")
	require.NoError(t, err)

	require.Len(t, store.calls, 1)
	call := store.calls[0]
	assert.Equal(t, int64(100), call.userID)
	assert.Equal(t, models.GameMeetEat, call.gameType)
	assert.Equal(t, "Italian", call.restaurant)
	assert.Equal(t, 3*time.Hour, call.ttl)

	assert.Equal(t, 1, tasks.Pending(), "expiry task armed for the session")

	got := notify.notices()
	require.Len(t, got, 1)
	assert.Equal(t, int64(100), got[0].userID)
	assert.Contains(t, got[0].text, "Meet&Eat")
	assert.Contains(t, got[0].text, "2026-09-04")
}

func TestConfirmPaymentStoreFailureSkipsNotice(t *testing.T) {
	tasks := schedule.NewRegistry()
	defer tasks.Close()

	notify := newFakeNotifier()
	store := &fakeLedgerStore{err: errors.New("tx aborted")}
	sessions := NewSessions(&fakeSessionStore{}, tasks, notify, 3*time.Hour)
	svc := NewLedger(store, sessions, notify, 3*time.Hour)

	err := svc.ConfirmPayment(context.Background(), 100, models.GameBarLiar, time.Now(), "")
	require.Error(t, err)
	assert.Empty(t, notify.notices())
	assert.Equal(t, 0, tasks.Pending())
}

func TestQuestionSubmitForwardsToAdmin(t *testing.T) {
	const adminID = int64(999)
	notify := newFakeNotifier()
	svc := NewQuestions(&fakeQuestionStore{}, notify, adminID)

	id, err := svc.Submit(context.Background(), 100, "When does the game start?")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got := notify.notices()
	require.Len(t, got, 1)
	assert.Equal(t, adminID, got[0].userID)
	assert.Contains(t, got[0].text, "New question #1 from 100")
	assert.Contains(t, got[0].text, "When does the game start?")
}

func TestQuestionAnswerReturnsAsker(t *testing.T) {
	store := &fakeQuestionStore{}
	svc := NewQuestions(store, newFakeNotifier(), 999)

	id, err := svc.Submit(context.Background(), 77, "hello?")
	require.NoError(t, err)

	asker, err := svc.Answer(context.Background(), id, "hi!")
	require.NoError(t, err)
	assert.Equal(t, int64(77), asker)

	_, err = svc.Answer(context.Background(), 12345, "who?")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfileCompleteReportsFirstCompletion(t *testing.T) {
	svc := NewProfiles(&fakeProfileStore{})

	first, err := svc.Complete(context.Background(), models.Profile{UserID: 100, Name: "Ana", Age: 25})
	require.NoError(t, err)
	assert.True(t, first)

	again, err := svc.Complete(context.Background(), models.Profile{UserID: 100, Name: "Ana", Age: 26})
	require.NoError(t, err)
	assert.False(t, again)

	done, err := svc.Completed(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = svc.Completed(context.Background(), 55)
	require.NoError(t, err)
	assert.False(t, done)
}
