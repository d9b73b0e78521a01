package bot

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/eventbot/core/logger"
	"github.com/m3rciful/eventbot/internal/flow"
	"github.com/m3rciful/eventbot/internal/models"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

func TestGameTypeByTitle(t *testing.T) {
	for _, g := range []models.GameType{
		models.GameMeetEat, models.GameLockStock, models.GameBarLiar, models.GameQuickDates,
	} {
		got, ok := gameTypeByTitle(g.Title())
		assert.True(t, ok)
		assert.Equal(t, g, got)
	}

	_, ok := gameTypeByTitle("Poker Night")
	assert.False(t, ok)
}

func TestDayKBMeetEatOnePerRow(t *testing.T) {
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	options := flow.DayOptions(models.GameMeetEat, base)
	require.Len(t, options, 3)

	kb := dayKB(models.GameMeetEat, options, 120, "PLN")
	require.Len(t, kb.InlineKeyboard, 3)
	for _, row := range kb.InlineKeyboard {
		assert.Len(t, row, 1)
	}
	assert.Contains(t, kb.InlineKeyboard[0][0].Text, "Italian")
	assert.Contains(t, kb.InlineKeyboard[0][0].Text, "120 PLN")
}

func TestDayKBOtherGamesThreePerRow(t *testing.T) {
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	options := flow.DayOptions(models.GameBarLiar, base)
	require.Len(t, options, 7)

	kb := dayKB(models.GameBarLiar, options, 90, "PLN")
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 3)
	assert.Len(t, kb.InlineKeyboard[2], 1)
}

func TestDayKBPayloadRoundTrips(t *testing.T) {
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	options := flow.DayOptions(models.GameMeetEat, base)
	kb := dayKB(models.GameMeetEat, options, 120, "PLN")

	for i, row := range kb.InlineKeyboard {
		choice, err := flow.ParseDayChoice(row[0].Data)
		require.NoError(t, err)
		assert.Equal(t, models.GameMeetEat, choice.GameType)
		assert.Equal(t, options[i].Date.Format("2006-01-02"), choice.Date.Format("2006-01-02"))
		assert.Equal(t, options[i].Cuisine, choice.Restaurant)
	}
}

func TestFormatDates(t *testing.T) {
	assert.Equal(t, noVisitsText, formatDates(nil))

	got := formatDates([]time.Time{
		time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, got, "2026-09-04")
	assert.Contains(t, got, "2026-09-11")
}
