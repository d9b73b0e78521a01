package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/eventbot/internal/models"
)

func TestDayChoiceRoundTrip(t *testing.T) {
	choice := DayChoice{
		GameType:   models.GameMeetEat,
		Date:       time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
		Restaurant: "Italian cuisine",
	}

	parsed, err := ParseDayChoice(choice.Encode())
	require.NoError(t, err)
	assert.Equal(t, choice, parsed)
}

func TestDayChoiceEmptyRestaurant(t *testing.T) {
	choice := DayChoice{
		GameType: models.GameBarLiar,
		Date:     time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
	}

	parsed, err := ParseDayChoice(choice.Encode())
	require.NoError(t, err)
	assert.Equal(t, choice, parsed)
}

func TestParseDayChoiceRejects(t *testing.T) {
	cases := map[string]string{
		"malformed":       "v1:meet_eat",
		"wrong version":   "v2:meet_eat:2025-05-05:",
		"unknown game":    "v1:poker:2025-05-05:",
		"bad date":        "v1:meet_eat:05.05.2025:",
		"empty":           "",
		"positional junk": "day_meet_eat_2025-05-05",
	}
	for name, payload := range cases {
		_, err := ParseDayChoice(payload)
		assert.Error(t, err, name)
	}
}
