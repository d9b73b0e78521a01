package flow

import (
	"time"

	"github.com/m3rciful/eventbot/internal/models"
)

// Week choices offered after rules confirmation.
const (
	WeekCurrent = "current"
	WeekNext    = "next"
)

// WeekBase computes the base date for day options: the current week starts
// now, the next one seven days out.
func WeekBase(choice string, now time.Time) (time.Time, bool) {
	switch choice {
	case WeekCurrent:
		return now, true
	case WeekNext:
		return now.AddDate(0, 0, 7), true
	}
	return time.Time{}, false
}

// DayOption is one bookable day derived from the week base.
type DayOption struct {
	Date time.Time
	// Cuisine is set only for Meet&Eat days, where each slot is a themed
	// restaurant evening.
	Cuisine string
}

var meetEatSlots = []struct {
	offset  int
	cuisine string
}{
	{4, "Italian cuisine"},
	{5, "Asian cuisine"},
	{6, "Mexican cuisine"},
}

// DayOptions generates the bookable days for a game type from the week base:
// Meet&Eat gets exactly three themed slots at +4/+5/+6 days, every other
// type gets seven consecutive days at +0..+6.
func DayOptions(gameType models.GameType, base time.Time) []DayOption {
	if gameType == models.GameMeetEat {
		out := make([]DayOption, 0, len(meetEatSlots))
		for _, slot := range meetEatSlots {
			out = append(out, DayOption{
				Date:    base.AddDate(0, 0, slot.offset),
				Cuisine: slot.cuisine,
			})
		}
		return out
	}
	out := make([]DayOption, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, DayOption{Date: base.AddDate(0, 0, i)})
	}
	return out
}
