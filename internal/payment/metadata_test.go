package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/eventbot/internal/models"
)

func TestMetadataRoundTrip(t *testing.T) {
	in := Metadata{
		UserID:     123456789,
		GameType:   models.GameMeetEat,
		GameDate:   time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Restaurant: "Italian",
	}

	encoded := in.Encode()
	assert.Equal(t, "123456789", encoded["user_id"])
	assert.Equal(t, "meet_eat", encoded["game_type"])
	assert.Equal(t, "2026-09-04", encoded["game_date"])
	assert.Equal(t, "Italian", encoded["restaurant"])

	out, err := ParseMetadata(encoded)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMetadataEmptyRestaurant(t *testing.T) {
	in := Metadata{
		UserID:   42,
		GameType: models.GameBarLiar,
		GameDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	out, err := ParseMetadata(in.Encode())
	require.NoError(t, err)
	assert.Empty(t, out.Restaurant)
}

func TestParseMetadataRejects(t *testing.T) {
	valid := map[string]string{
		"user_id":   "42",
		"game_type": "lock_stock",
		"game_date": "2026-09-01",
	}

	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"missing user id", "user_id", ""},
		{"non numeric user id", "user_id", "abc"},
		{"zero user id", "user_id", "0"},
		{"negative user id", "user_id", "-5"},
		{"unknown game type", "game_type", "poker"},
		{"empty game type", "game_type", ""},
		{"bad date", "game_date", "04.09.2026"},
		{"missing date", "game_date", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			md := make(map[string]string, len(valid))
			for k, v := range valid {
				md[k] = v
			}
			md[tc.key] = tc.val
			_, err := ParseMetadata(md)
			assert.Error(t, err)
		})
	}
}
