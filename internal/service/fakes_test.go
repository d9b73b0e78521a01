package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/m3rciful/eventbot/core/logger"
	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/storage"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

type sentNotice struct {
	userID int64
	text   string
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []sentNotice
	errs  map[int64]error
	fired chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{fired: make(chan struct{}, 16)}
}

func (f *fakeNotifier) Notify(_ context.Context, userID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[userID]; ok {
		return err
	}
	f.sent = append(f.sent, sentNotice{userID: userID, text: text})
	select {
	case f.fired <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeNotifier) notices() []sentNotice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentNotice, len(f.sent))
	copy(out, f.sent)
	return out
}

type confirmCall struct {
	userID     int64
	gameType   models.GameType
	gameDate   time.Time
	restaurant string
	ttl        time.Duration
}

type fakeLedgerStore struct {
	mu      sync.Mutex
	calls   []confirmCall
	session models.GameSession
	err     error
}

func (f *fakeLedgerStore) ConfirmPayment(_ context.Context, userID int64, gameType models.GameType, gameDate time.Time, restaurant string, ttl time.Duration) (models.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, confirmCall{userID, gameType, gameDate, restaurant, ttl})
	return f.session, f.err
}

func (f *fakeLedgerStore) PastVisitDates(context.Context, int64) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeLedgerStore) FutureGameDates(context.Context, int64) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeLedgerStore) AttendedCount(context.Context, int64) (int, error) {
	return 0, nil
}

type fakeSessionStore struct {
	mu          sync.Mutex
	active      []models.GameSession
	expire      models.GameSession
	expireOK    bool
	expireCalls int
	deleted     []int64
}

func (f *fakeSessionStore) ListActive(context.Context) ([]models.GameSession, error) {
	return f.active, nil
}

func (f *fakeSessionStore) Expire(_ context.Context, gameID int64) (models.GameSession, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expireCalls++
	if !f.expireOK {
		return models.GameSession{}, false, nil
	}
	f.expireOK = false
	return f.expire, true, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, gameID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, gameID)
	return true, nil
}

func (f *fakeSessionStore) Reschedule(_ context.Context, gameID int64, newDate time.Time, ttl time.Duration) (models.GameSession, error) {
	return models.GameSession{GameID: gameID, GameDate: newDate, EndTime: newDate.Add(ttl), Active: true}, nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[int64]models.Profile
}

func (f *fakeProfileStore) Get(_ context.Context, userID int64) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return models.Profile{}, storage.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileStore) Save(_ context.Context, p models.Profile) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profiles == nil {
		f.profiles = make(map[int64]models.Profile)
	}
	prev, existed := f.profiles[p.UserID]
	p.Completed = true
	f.profiles[p.UserID] = p
	return !existed || !prev.Completed, nil
}

type fakeQuestionStore struct {
	mu     sync.Mutex
	nextID int64
	askers map[int64]int64
}

func (f *fakeQuestionStore) Create(_ context.Context, userID int64, _ string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if f.askers == nil {
		f.askers = make(map[int64]int64)
	}
	f.askers[f.nextID] = userID
	return f.nextID, nil
}

func (f *fakeQuestionStore) Answer(_ context.Context, qID int64, _ string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.askers[qID]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return userID, nil
}
