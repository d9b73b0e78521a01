package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/eventbot/internal/models"
)

func TestWeekBase(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	base, ok := WeekBase(WeekCurrent, now)
	require.True(t, ok)
	assert.Equal(t, now, base)

	base, ok = WeekBase(WeekNext, now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, 7), base)

	_, ok = WeekBase("someday", now)
	assert.False(t, ok)
}

func TestDayOptionsMeetEat(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	options := DayOptions(models.GameMeetEat, base)
	require.Len(t, options, 3)

	wantOffsets := []int{4, 5, 6}
	wantCuisines := []string{"Italian cuisine", "Asian cuisine", "Mexican cuisine"}
	for i, opt := range options {
		assert.Equal(t, base.AddDate(0, 0, wantOffsets[i]), opt.Date)
		assert.Equal(t, wantCuisines[i], opt.Cuisine)
	}
}

func TestDayOptionsOtherTypes(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, gt := range []models.GameType{
		models.GameLockStock, models.GameBarLiar, models.GameQuickDates,
	} {
		options := DayOptions(gt, base)
		require.Len(t, options, 7, "game type %s", gt)
		for i, opt := range options {
			assert.Equal(t, base.AddDate(0, 0, i), opt.Date)
			assert.Empty(t, opt.Cuisine)
		}
	}
}
