// Package models holds the persistent entities shared by storage and services.
package models

import (
	"time"

	"github.com/lib/pq"
)

// GameType identifies one of the bookable event formats.
type GameType string

const (
	GameMeetEat    GameType = "meet_eat"
	GameLockStock  GameType = "lock_stock"
	GameBarLiar    GameType = "bar_liar"
	GameQuickDates GameType = "quick_dates"
)

// AdultOnly reports whether the game type requires age >= 18.
func (g GameType) AdultOnly() bool { return g == GameQuickDates }

// Known reports whether the value belongs to the closed game type set.
func (g GameType) Known() bool {
	switch g {
	case GameMeetEat, GameLockStock, GameBarLiar, GameQuickDates:
		return true
	}
	return false
}

// Title returns the display name shown on menus and receipts.
func (g GameType) Title() string {
	switch g {
	case GameMeetEat:
		return "Meet&Eat"
	case GameLockStock:
		return "Lock Stock"
	case GameBarLiar:
		return "Liars Bar"
	case GameQuickDates:
		return "Quick Dates"
	}
	return string(g)
}

// Profile is one user's intake record.
type Profile struct {
	UserID    int64  `db:"user_id"`
	Name      string `db:"name"`
	Age       int    `db:"age"`
	Answer    string `db:"answer"`
	Completed bool   `db:"completed"`
}

// Registration is one paid booking. Rebooking the same date creates another row.
type Registration struct {
	RegID      int64     `db:"reg_id"`
	UserID     int64     `db:"user_id"`
	GameType   GameType  `db:"game_type"`
	GameDate   time.Time `db:"game_date"`
	Restaurant string    `db:"restaurant"`
	Paid       bool      `db:"paid"`
	CreatedAt  time.Time `db:"created_at"`
}

// Visit tracks attendance eligibility, one row per (user, date).
type Visit struct {
	UserID   int64     `db:"user_id"`
	GameDate time.Time `db:"game_date"`
	Attended bool      `db:"attended"`
}

// GameSession is one scheduled occurrence of a game type on a date.
type GameSession struct {
	GameID       int64         `db:"game_id"`
	GameType     GameType      `db:"game_type"`
	GameDate     time.Time     `db:"game_date"`
	Participants pq.Int64Array `db:"participants"`
	Active       bool          `db:"active"`
	EndTime      time.Time     `db:"end_time"`
}

// Question is a help request waiting for an admin reply.
type Question struct {
	QID      int64  `db:"q_id"`
	UserID   int64  `db:"user_id"`
	Question string `db:"question"`
	Answered bool   `db:"answered"`
	Answer   string `db:"answer"`
}

// Stats is the singleton counters row.
type Stats struct {
	ID                 int   `db:"id"`
	TotalUsers         int64 `db:"total_users"`
	TotalRegistrations int64 `db:"total_registrations"`
	TotalPayments      int64 `db:"total_payments"`
	TotalVisits        int64 `db:"total_visits"`
}
